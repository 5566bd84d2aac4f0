package application

import "github.com/geocoder89/devjobs/internal/utils"

// Listing is an application joined with its applier, as shown to a recruiter.
type Listing struct {
	ApplicationID int64  `json:"application_id"`
	UserID        int64  `json:"user_id"`
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Email         string `json:"email"`
}

type Applier struct {
	Email     utils.FlexString `json:"email" binding:"required"`
	Firstname string           `json:"firstname"`
	Lastname  string           `json:"lastname"`
}

type CreateRequest struct {
	Recruiter utils.FlexString `json:"recruiter" binding:"required"`
	Applier   *Applier         `json:"applier" binding:"required"`
}

// Create is what the store needs to record one application.
type Create struct {
	Recruiter string
	Email     string
	Firstname string
	Lastname  string
}

func (r CreateRequest) ToCreate() Create {
	return Create{
		Recruiter: r.Recruiter.String(),
		Email:     r.Applier.Email.String(),
		Firstname: r.Applier.Firstname,
		Lastname:  r.Applier.Lastname,
	}
}
