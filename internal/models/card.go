package models

// ProjectCard is the condensed record shown in list and grid views.
type ProjectCard struct {
	ID               string `json:"id"`
	Acronym          string `json:"acronym"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	Coordinator      string `json:"coordinator"`
	Country          string `json:"country"`
	MaxAmount        string `json:"maxAmount"`
	Duration         string `json:"duration"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	ParticipantCount int    `json:"participantCount"`
	DeliverableCount int    `json:"deliverableCount"`
	MilestoneCount   int    `json:"milestoneCount"`
}

// NewProjectCard projects a loaded project into its card under the given id.
func NewProjectCard(id string, p *Project) ProjectCard {
	return ProjectCard{
		ID:               id,
		Acronym:          p.ProjectInfo.Acronym,
		Title:            p.ProjectInfo.Title,
		Summary:          p.ProjectInfo.Summary,
		Coordinator:      p.ProjectInfo.Coordinator.Name,
		Country:          p.ProjectInfo.Coordinator.Location,
		MaxAmount:        p.ProjectInfo.MaxAmount,
		Duration:         p.ProjectInfo.Duration,
		StartDate:        p.ProjectInfo.StartDate,
		EndDate:          p.ProjectInfo.EndDate,
		ParticipantCount: len(p.Participants),
		DeliverableCount: len(p.Deliverables),
		MilestoneCount:   len(p.Milestones),
	}
}

// Manifest is the projects-manifest.json document kept next to the data files.
type Manifest struct {
	Projects      []string `json:"projects"`
	LastUpdated   string   `json:"lastUpdated"`
	Description   string   `json:"description"`
	GeneratedBy   string   `json:"generatedBy"`
	TotalProjects int      `json:"totalProjects"`
}

const (
	ManifestFileName    = "projects-manifest.json"
	ManifestDescription = "Auto-generated manifest file listing all available EU project data files"
)
