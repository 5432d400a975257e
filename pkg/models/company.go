package models

// CompanyInfo is the print shop's identity. Quotes keep a frozen copy of it.
type CompanyInfo struct {
	Name           string  `json:"name" validate:"required"`
	LogoURLDarkBg  *string `json:"logoUrlDarkBg,omitempty"`
	LogoURLLightBg *string `json:"logoUrlLightBg,omitempty"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	CNPJ           *string `json:"cnpj,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
	Website        *string `json:"website,omitempty"`
}

// Snapshot returns a deep copy so later edits to the company do not leak into it.
func (c CompanyInfo) Snapshot() CompanyInfo {
	out := c
	out.LogoURLDarkBg = cloneString(c.LogoURLDarkBg)
	out.LogoURLLightBg = cloneString(c.LogoURLLightBg)
	out.CNPJ = cloneString(c.CNPJ)
	out.Instagram = cloneString(c.Instagram)
	out.Website = cloneString(c.Website)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
