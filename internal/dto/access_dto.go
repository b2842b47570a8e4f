package dto

type RedeemAccessCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type RedeemAccessCodeResponse struct {
	Token         string   `json:"token"`
	SchoolName    string   `json:"school_name"`
	AllowedLevels []string `json:"allowed_levels"`
}

type CatalogResponse struct {
	Levels   []string `json:"levels"`
	Subjects []string `json:"subjects"`
	// Guidance maps each subject to its "how to answer" exam tips.
	Guidance map[string]string `json:"guidance"`
}
