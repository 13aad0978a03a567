package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Project is the full record decoded from <id>.json.
type Project struct {
	ProjectInfo           ProjectInfo   `json:"projectInfo"`
	Participants          []Participant `json:"participants"`
	WorkPackagesWithTasks []WorkPackage `json:"workPackagesWithTasks"`
	Deliverables          []Deliverable `json:"deliverables"`
	Milestones            []Milestone   `json:"milestones"`
}

type ProjectInfo struct {
	Title             string          `json:"title"`
	Acronym           string          `json:"acronym"`
	GrantNumber       string          `json:"grantNumber"`
	GrantType         string          `json:"grantType"`
	MaxAmount         string          `json:"maxAmount"` // Currency formatted, e.g. "€4,999,750.00"
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Duration          string          `json:"duration"` // e.g. "48 Months"
	Coordinator       Coordinator     `json:"coordinator"`
	Summary           string          `json:"summary"`
	ParticipantsIntro string          `json:"participantsIntro"`
	TimelineEvents    []TimelineEntry `json:"timelineEvents"`
}

type Coordinator struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// TimelineEntry is a reporting period or checkpoint listed directly in projectInfo.
type TimelineEntry struct {
	Period      string `json:"period"`
	Month       int    `json:"month"`
	Type        string `json:"type"` // milestone, report
	Description string `json:"description"`
}

type Participant struct {
	No          int     `json:"no"`
	Role        string  `json:"role"` // Coordinator, Beneficiary
	ShortName   string  `json:"shortName"`
	LegalName   string  `json:"legalName"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Leader string `json:"leader"`
}

type WorkPackage struct {
	No     int    `json:"no"`
	Title  string `json:"title"`
	Leader string `json:"leader"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Tasks  []Task `json:"tasks"`
}

type Deliverable struct {
	No     string `json:"no"`
	Name   string `json:"name"`
	WP     int    `json:"wp"`
	Leader string `json:"leader"`
	Type   string `json:"type"`  // Report, Other
	Level  string `json:"level"` // Public, Sensitive, Classified
	Due    int    `json:"due"`
}

type Milestone struct {
	No     int    `json:"no"`
	Name   string `json:"name"`
	WP     WPRef  `json:"wp"`
	Leader string `json:"leader"`
	Due    int    `json:"due"`
}

// WPRef holds a work package reference that the data files write either as a
// number (3) or as a string ("WP3", "3,4").
type WPRef string

func (w *WPRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*w = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WPRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = WPRef(n.String())
	return nil
}

func (w WPRef) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(w)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(w))
}

// LeadOrganisation returns the first participant in source order. The data
// files list the coordinating organisation first; nothing enforces it.
func (p *Project) LeadOrganisation() (Participant, bool) {
	if len(p.Participants) == 0 {
		return Participant{}, false
	}
	return p.Participants[0], true
}

// CoordinatorParticipant finds the participant whose role is Coordinator.
func (p *Project) CoordinatorParticipant() (Participant, bool) {
	for _, part := range p.Participants {
		if part.IsCoordinator() {
			return part, true
		}
	}
	return Participant{}, false
}

func (p Participant) IsCoordinator() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), "Coordinator")
}
