package route

import (
	"strings"

	"github.com/BaSui01/routeflow/types"
)

// routingPhrase is the free-text fallback marker scanned for in message
// content when no structured routing metadata is present.
const routingPhrase = "routing to "

// MetadataCarrier is implemented by responses that expose a side-channel
// metadata map. Declared here so extraction branches on capability presence
// rather than nominal type.
type MetadataCarrier interface {
	ResponseMetadata() map[string]any
}

// HistoryCarrier is implemented by responses that embed an ordered
// conversation history.
type HistoryCarrier interface {
	ConversationHistory() []types.Message
}

// Extract pulls a routing label out of a classifier response and returns it
// normalized. Resolution order, short-circuiting on first hit:
//
//  1. response-level metadata under the route_pattern key
//  2. the same key on any history message, oldest first
//  3. free-text "routing to <label>" scan over history message content
//
// Responses that are not of a recognized shape yield "" — unknown shapes are
// treated as "no routing opinion", not an error. Extract never fails.
func Extract(resp any) Category {
	carrier, hasMetadata := resp.(MetadataCarrier)
	history, hasHistory := resp.(HistoryCarrier)
	if !hasMetadata && !hasHistory {
		return ""
	}

	if hasMetadata {
		if label, ok := labelFromMetadata(carrier.ResponseMetadata()); ok {
			return Normalize(label)
		}
	}

	if hasHistory {
		messages := history.ConversationHistory()
		for _, msg := range messages {
			if label, ok := labelFromMetadata(msg.Metadata); ok {
				return Normalize(label)
			}
		}
		for _, msg := range messages {
			if label, ok := labelFromText(msg.Content); ok {
				return Normalize(label)
			}
		}
	}

	return ""
}

// IsDirect reports whether resp carries a direct routing decision.
func IsDirect(resp any) bool { return Extract(resp) == Direct }

// IsSimple reports whether resp carries a simple routing decision.
func IsSimple(resp any) bool { return Extract(resp) == Simple }

// IsComplex reports whether resp carries a complex routing decision.
func IsComplex(resp any) bool { return Extract(resp) == Complex }

func labelFromMetadata(metadata map[string]any) (string, bool) {
	if metadata == nil {
		return "", false
	}
	value, ok := metadata[types.MetadataKeyRoutePattern]
	if !ok {
		return "", false
	}
	label, ok := value.(string)
	if !ok || label == "" {
		return "", false
	}
	return label, true
}

// labelFromText recovers routing intent from free text: the token
// immediately following the literal phrase "routing to ", lower-cased.
func labelFromText(content string) (string, bool) {
	lowered := strings.ToLower(content)
	idx := strings.Index(lowered, routingPhrase)
	if idx < 0 {
		return "", false
	}
	rest := lowered[idx+len(routingPhrase):]
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return strings.Trim(fields[0], ".,:;!?"), true
}
