package entities

// AuthorizationStatus is the tri-state answer of a device permission check.
type AuthorizationStatus string

const (
	AuthorizationNotDetermined AuthorizationStatus = "not_determined"
	AuthorizationAuthorized    AuthorizationStatus = "authorized"
	AuthorizationDenied        AuthorizationStatus = "denied"
)

// Capability is a device capability guarded by a permission.
type Capability string

const (
	CapabilityCamera     Capability = "camera"
	CapabilityMicrophone Capability = "microphone"
)

func ParseCapability(s string) (Capability, bool) {
	switch Capability(s) {
	case CapabilityCamera, CapabilityMicrophone:
		return Capability(s), true
	}
	return "", false
}
