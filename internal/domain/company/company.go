package company

type Company struct {
	ID      int64   `json:"company_id"`
	Nom     *string `json:"nom"`
	Domaine *string `json:"domaine"`
	Email   *string `json:"email"`
}
