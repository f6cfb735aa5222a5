// Package model defines the shared data structures of the job tracker:
// job postings, the preference profile and application statuses.
package model

import "strconv"

// Mode is the work arrangement of a posting.
type Mode string

const (
	ModeRemote Mode = "Remote"
	ModeHybrid Mode = "Hybrid"
	ModeOnsite Mode = "Onsite"
)

// Source is the platform a posting was listed on.
type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceNaukri   Source = "Naukri"
	SourceIndeed   Source = "Indeed"
)

// Locations is the fixed city set a posting may use.
var Locations = []string{"Bangalore", "Hyderabad", "Chennai", "Pune", "Mumbai", "Noida", "Mysore"}

// ExperienceBands lists experience bands from most junior to most senior.
var ExperienceBands = []string{"Fresher", "0-1", "1-3", "3-5"}

// Modes lists every work mode.
var Modes = []Mode{ModeRemote, ModeHybrid, ModeOnsite}

// Sources lists every source platform.
var Sources = []Source{SourceLinkedIn, SourceNaukri, SourceIndeed}

// Job is an immutable catalog posting. The JSON and YAML shapes match the
// catalog seed file.
type Job struct {
	ID            int      `json:"id"            yaml:"id"            validate:"required,gt=0"`
	Title         string   `json:"title"         yaml:"title"         validate:"required"`
	Company       string   `json:"company"       yaml:"company"       validate:"required"`
	Location      string   `json:"location"      yaml:"location"      validate:"required,oneof=Bangalore Hyderabad Chennai Pune Mumbai Noida Mysore"`
	Mode          Mode     `json:"mode"          yaml:"mode"          validate:"required,oneof=Remote Hybrid Onsite"`
	Experience    string   `json:"experience"    yaml:"experience"    validate:"required,oneof=Fresher 0-1 1-3 3-5"`
	SalaryRange   string   `json:"salaryRange"   yaml:"salaryRange"   validate:"required"`
	Skills        []string `json:"skills"        yaml:"skills"`
	Description   string   `json:"description"   yaml:"description"`
	Source        Source   `json:"source"        yaml:"source"        validate:"required,oneof=LinkedIn Naukri Indeed"`
	PostedDaysAgo int      `json:"postedDaysAgo" yaml:"postedDaysAgo" validate:"gte=0"`
	ApplyURL      string   `json:"applyUrl"      yaml:"applyUrl"      validate:"required,url"`
}

// PostedLabel renders PostedDaysAgo the way job cards show it.
func (j Job) PostedLabel() string {
	switch j.PostedDaysAgo {
	case 0:
		return "Today"
	case 1:
		return "1 day ago"
	}
	return strconv.Itoa(j.PostedDaysAgo) + " days ago"
}
