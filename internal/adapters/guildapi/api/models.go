package api

type Guild struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URLName     string `json:"urlName,omitempty"`
	ImageURL    string `json:"imageUrl"`
	RolesCount  int    `json:"rolesCount"`
	MemberCount int    `json:"memberCount"`
}
