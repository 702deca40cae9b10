package dto

// DealerRequest body for dealer create/update.
type DealerRequest struct {
	Name             string   `json:"name"`
	ContactPerson    string   `json:"contact_person,omitempty"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email,omitempty"`
	Address          string   `json:"address,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Pincode          string   `json:"pincode,omitempty"`
	GSTNumber        string   `json:"gst_number,omitempty"`
	SupplyCategories []string `json:"supply_categories,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// DealerResponse is the dealer representation.
type DealerResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ContactPerson    string   `json:"contact_person,omitempty"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email,omitempty"`
	Address          string   `json:"address,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Pincode          string   `json:"pincode,omitempty"`
	GSTNumber        string   `json:"gst_number,omitempty"`
	SupplyCategories []string `json:"supply_categories,omitempty"`
	IsActive         bool     `json:"is_active"`
}
