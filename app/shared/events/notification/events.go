package notificationevents

// RequestedV1 is the topic notification requests are published on.
const RequestedV1 = "notification.requested.v1"

// Type identifies why a notification was requested.
type Type string

const (
	TypeMatchInvitation    Type = "match_invitation"
	TypeMatchCanceled      Type = "match_canceled"
	TypeMatchUpdated       Type = "match_updated"
	TypeInvitationResponse Type = "invitation_response"
)

// DefaultChannel is used when a request names no delivery channel.
const DefaultChannel = "email"

// RequestedPayloadV1 asks the notification subsystem to notify one user.
type RequestedPayloadV1 struct {
	UserID  int64  `json:"user_id"`
	MatchID *int64 `json:"match_id,omitempty"`
	Type    Type   `json:"type"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

// IsValid reports whether t is a known notification type.
func (t Type) IsValid() bool {
	switch t {
	case TypeMatchInvitation, TypeMatchCanceled, TypeMatchUpdated, TypeInvitationResponse:
		return true
	default:
		return false
	}
}
