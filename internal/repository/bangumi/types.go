package bangumi

import "github.com/PizzaHomicide/sedai/internal/domain"

// apiUser is the wire shape of GET /v0/users/{username}
type apiUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
		Small  string `json:"small"`
	} `json:"avatar"`
}

// apiCollectionPage is the wire shape of GET /v0/users/{username}/collections
type apiCollectionPage struct {
	Data   []apiCollection `json:"data"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type apiCollection struct {
	SubjectID   int        `json:"subject_id"`
	SubjectType int        `json:"subject_type"`
	Rate        int        `json:"rate"`
	Type        int        `json:"type"`
	Subject     apiSubject `json:"subject"`
}

type apiSubject struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	NameCN string  `json:"name_cn"`
	Date   *string `json:"date"`
	Score  float64 `json:"score"`
	Images struct {
		Small  string `json:"small"`
		Grid   string `json:"grid"`
		Large  string `json:"large"`
		Medium string `json:"medium"`
		Common string `json:"common"`
	} `json:"images"`
}

func (u apiUser) toDomain() *domain.UserProfile {
	return &domain.UserProfile{
		ID:       u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
		Avatar: domain.Avatar{
			Large:  u.Avatar.Large,
			Medium: u.Avatar.Medium,
			Small:  u.Avatar.Small,
		},
	}
}

func (c apiCollection) toDomain() domain.CollectionRecord {
	var date string
	if c.Subject.Date != nil {
		date = *c.Subject.Date
	}

	return domain.CollectionRecord{
		SubjectID:   c.SubjectID,
		SubjectType: domain.SubjectType(c.SubjectType),
		Rate:        domain.ClampRating(c.Rate),
		Type:        domain.CollectionType(c.Type),
		Subject: domain.Subject{
			ID:     c.Subject.ID,
			Name:   c.Subject.Name,
			NameCN: c.Subject.NameCN,
			Date:   date,
			Score:  c.Subject.Score,
			Images: domain.SubjectImages{
				Small:  c.Subject.Images.Small,
				Grid:   c.Subject.Images.Grid,
				Large:  c.Subject.Images.Large,
				Medium: c.Subject.Images.Medium,
				Common: c.Subject.Images.Common,
			},
		},
	}
}
