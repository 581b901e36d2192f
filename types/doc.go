// Package types provides core types used across the routeflow module.
// This package has ZERO dependencies on other routeflow packages to avoid
// circular imports. All other packages should import types from here.
package types
