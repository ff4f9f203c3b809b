package reference

type TagInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=50"`
	Description string   `json:"description" validate:"max=255"`
	CostCodeIDs []string `json:"costCodeIds"`
}

type CostCodeInput struct {
	Code     string `json:"code" validate:"required,min=1,max=20"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type JobsiteInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Code        string `json:"code" validate:"max=32"`
	Description string `json:"description" validate:"max=255"`
}

type JobsiteTagsInput struct {
	TagIDs  []string `json:"tagIds"`
	Confirm bool     `json:"confirm"`
}
