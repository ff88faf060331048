package domain

// Project groups related tasks on a board and carries the display
// metadata the front end uses to render its card.
type Project struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Department          string `json:"department,omitempty"`
	BackgroundColor     string `json:"backgroundColor,omitempty"`
	BackgroundImage     string `json:"backgroundImage,omitempty"`
	BackgroundColorCard string `json:"backgroundColorCard,omitempty"`
	BackgroundCard      string `json:"backgroundCard,omitempty"`
	Priority            bool   `json:"priority,omitempty"`
	DateAccess          string `json:"dateAccess,omitempty"`
}

// ProjectPatch is a partial update. A nil field keeps the stored value.
type ProjectPatch struct {
	Name                *string
	Description         *string
	Department          *string
	BackgroundColor     *string
	BackgroundImage     *string
	BackgroundColorCard *string
	BackgroundCard      *string
	Priority            *bool
	DateAccess          *string
}
