package models

// UserProfile is the public profile of a GitHub user
type UserProfile struct {
	Login    string  `json:"login"`
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
}

// Field returns the value of an optional profile field, or "None" when it is unset
func Field(value *string) string {
	if value == nil {
		return "None"
	}
	return *value
}
