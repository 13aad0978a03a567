package views

import (
	"time"

	"github.com/david/eu-project-explorer/internal/models"
	"github.com/david/eu-project-explorer/internal/timeline"
)

// Overview is the header block of a project page.
type Overview struct {
	Title             string             `json:"title"`
	Acronym           string             `json:"acronym"`
	GrantNumber       string             `json:"grantNumber"`
	GrantType         string             `json:"grantType"`
	MaxAmount         string             `json:"maxAmount"`
	Amount            string             `json:"amount"` // display form of MaxAmount
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
	StartYear         string             `json:"startYear"`
	EndYear           string             `json:"endYear"`
	Duration          string             `json:"duration"`
	DurationMonths    int                `json:"durationMonths"`
	Coordinator       models.Coordinator `json:"coordinator"`
	Summary           RichText           `json:"summary"`
	ParticipantsIntro RichText           `json:"participantsIntro"`
}

// DetailView is the page model for one project.
type DetailView struct {
	ID               string               `json:"id"`
	Overview         Overview             `json:"overview"`
	LeadOrganisation *models.Participant  `json:"leadOrganisation,omitempty"`
	WorkPackages     []models.WorkPackage `json:"workPackages"`
	Milestones       []models.Milestone   `json:"milestones"`
	Timeline         timeline.View        `json:"timeline"`
	Deliverables     DeliverablesView     `json:"deliverables"`
	Participants     ParticipantsView     `json:"participants"`
}

// NewOverview builds the header block with sanitized rich text.
func NewOverview(info models.ProjectInfo) Overview {
	return Overview{
		Title:             info.Title,
		Acronym:           info.Acronym,
		GrantNumber:       info.GrantNumber,
		GrantType:         info.GrantType,
		MaxAmount:         info.MaxAmount,
		Amount:            FormatAmount(info.MaxAmount),
		StartDate:         info.StartDate,
		EndDate:           info.EndDate,
		StartYear:         YearOf(info.StartDate),
		EndYear:           YearOf(info.EndDate),
		Duration:          info.Duration,
		DurationMonths:    timeline.DurationMonths(info.Duration),
		Coordinator:       info.Coordinator,
		Summary:           newRichText(info.Summary),
		ParticipantsIntro: newRichText(info.ParticipantsIntro),
	}
}

// Detail assembles the full project page as seen at now.
func Detail(id string, p *models.Project, now time.Time) DetailView {
	view := DetailView{
		ID:           id,
		Overview:     NewOverview(p.ProjectInfo),
		WorkPackages: nonNil(p.WorkPackagesWithTasks),
		Milestones:   nonNil(p.Milestones),
		Timeline:     timeline.Build(p, now),
		Deliverables: Deliverables(p),
		Participants: Participants(p),
	}
	if lead, ok := p.LeadOrganisation(); ok {
		view.LeadOrganisation = &lead
	}
	return view
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
