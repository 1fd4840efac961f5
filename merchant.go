package paymentdomain

import "github.com/google/uuid"

// Merchant identifies a store in the gateway integration. FUC is the
// commerce code assigned to the store (up to 9 digits); Terminal is the
// terminal number within that store (up to 3 digits). Pure value object,
// no lifecycle.
type Merchant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FUC      string `json:"fuc" validate:"required,number,max=9"`
	Terminal string `json:"terminal" validate:"required,number,max=3"`
}

// NewMerchant creates a validated Merchant, generating an identifier.
func NewMerchant(name, fuc, terminal string) (*Merchant, error) {
	m := &Merchant{
		ID:       uuid.NewString(),
		Name:     name,
		FUC:      fuc,
		Terminal: terminal,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the FUC and terminal formats.
func (m *Merchant) Validate() error {
	if err := validate.Struct(m); err != nil {
		return validationError("merchant", err)
	}
	return nil
}

// ToMap serializes the merchant to its structured-mapping form.
func (m *Merchant) ToMap() map[string]any {
	out := map[string]any{
		"fuc":      m.FUC,
		"terminal": m.Terminal,
	}
	if m.ID != "" {
		out["id"] = m.ID
	}
	if m.Name != "" {
		out["name"] = m.Name
	}
	return out
}

// MerchantFromMap rebuilds a Merchant from its structured-mapping form and
// validates it.
func MerchantFromMap(in map[string]any) (*Merchant, error) {
	m := &Merchant{}
	var err error
	if m.ID, err = mapString(in, "id"); err != nil {
		return nil, err
	}
	if m.Name, err = mapString(in, "name"); err != nil {
		return nil, err
	}
	if m.FUC, err = mapString(in, "fuc"); err != nil {
		return nil, err
	}
	if m.Terminal, err = mapString(in, "terminal"); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
