package model

// ServiceType is an entry of the open-ended service taxonomy referenced by
// Facilitator.ServiceTypes.
type ServiceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
