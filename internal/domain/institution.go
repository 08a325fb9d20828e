package domain

// Institution é um dado de referência: cada instituição expõe a mesma API em BaseURL
type Institution struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

// InstitutionIndex resolve instituições pelo nome gravado nas contas locais
type InstitutionIndex map[string]*Institution

func NewInstitutionIndex(institutions []*Institution) InstitutionIndex {
	index := make(InstitutionIndex, len(institutions))
	for _, inst := range institutions {
		if inst == nil || inst.BaseURL == "" {
			continue
		}
		index[inst.Name] = inst
	}
	return index
}
