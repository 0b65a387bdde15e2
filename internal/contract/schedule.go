package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

const (
	minConfidence = 1
	maxConfidence = 5
)

// GenerateRequest is the input of the generate operation.
type GenerateRequest struct {
	Profile    *domain.StudentProfile `json:"profile" yaml:"profile"`
	Subjects   []domain.Subject       `json:"subjects" yaml:"subjects"`
	TargetDate string                 `json:"targetDate" yaml:"targetDate"`
}

// AdaptRequest is the input of the adapt operation. The schedule is either
// sent inline or referenced by ScheduleID, in which case the latest stored
// version is adapted.
type AdaptRequest struct {
	CurrentSchedule   *domain.StudySchedule     `json:"currentSchedule,omitempty"`
	ScheduleID        string                    `json:"scheduleId,omitempty"`
	ConfidenceUpdates []domain.ConfidenceUpdate `json:"confidenceUpdates"`
	CurrentWeek       *int                      `json:"currentWeek"`
}

// NewAdaptRequest builds an adapt request for a stored schedule.
func NewAdaptRequest(scheduleID string, updates []domain.ConfidenceUpdate, currentWeek int) AdaptRequest {
	return AdaptRequest{ScheduleID: scheduleID, ConfidenceUpdates: updates, CurrentWeek: &currentWeek}
}

// Week returns CurrentWeek, or 0 when unset.
func (r AdaptRequest) Week() int {
	if r.CurrentWeek == nil {
		return 0
	}
	return *r.CurrentWeek
}

// Validate checks the request before any model call. The target date must
// fall strictly after now's calendar day.
func (r GenerateRequest) Validate(now time.Time) error {
	var missing []string
	if r.Profile == nil {
		missing = append(missing, "profile")
	}
	if r.Subjects == nil {
		missing = append(missing, "subjects")
	}
	if strings.TrimSpace(r.TargetDate) == "" {
		missing = append(missing, "targetDate")
	}
	if len(missing) > 0 {
		return ValidationError("Missing required fields: "+strings.Join(missing, ", "), "")
	}
	if len(r.Subjects) == 0 {
		return ValidationError("At least one subject is required", "")
	}

	var problems []string
	p := r.Profile
	if p.WeekdayHours < 0 || p.WeekendHours < 0 {
		problems = append(problems, "study hours must not be negative")
	}
	if p.WeekdayHours <= 0 && p.WeekendHours <= 0 {
		problems = append(problems, "at least one of weekdayHours and weekendHours must be positive")
	}
	if p.WeekdayHours > 24 || p.WeekendHours > 24 {
		problems = append(problems, "study hours must not exceed 24 per day")
	}
	if p.PreferredTime != "" && !domain.ValidPreferredTimes[p.PreferredTime] {
		problems = append(problems, fmt.Sprintf("preferredTime %q must be morning, afternoon or night", p.PreferredTime))
	}

	for i, s := range r.Subjects {
		label := fmt.Sprintf("subjects[%d]", i)
		if strings.TrimSpace(s.Name) == "" {
			problems = append(problems, label+": name is required")
		} else {
			label = fmt.Sprintf("subject %q", s.Name)
		}
		if s.Credits < 0 {
			problems = append(problems, label+": credits must not be negative")
		}
		if !validConfidence(s.Confidence) {
			problems = append(problems, fmt.Sprintf("%s: confidence %d is outside 1..5", label, s.Confidence))
		}
		if len(s.Topics) == 0 {
			problems = append(problems, label+": at least one topic is required")
		}
		for j, t := range s.Topics {
			if strings.TrimSpace(t.Name) == "" {
				problems = append(problems, fmt.Sprintf("%s: topics[%d]: name is required", label, j))
				continue
			}
			if !validConfidence(t.Confidence) {
				problems = append(problems, fmt.Sprintf("%s: topic %q: confidence %d is outside 1..5", label, t.Name, t.Confidence))
			}
		}
	}

	if target, err := scheduler.ParseDate(r.TargetDate); err != nil {
		problems = append(problems, fmt.Sprintf("targetDate %q is not a YYYY-MM-DD date", r.TargetDate))
	} else if !scheduler.Day(target).After(scheduler.Day(now)) {
		problems = append(problems, fmt.Sprintf("targetDate %s must be after today", scheduler.Day(target).Format(domain.DateLayout)))
	}

	if len(problems) > 0 {
		return ValidationError("Invalid schedule request", strings.Join(problems, "; "))
	}
	return nil
}

// Validate checks the request before any model call.
func (r AdaptRequest) Validate() error {
	var missing []string
	if r.CurrentSchedule == nil && strings.TrimSpace(r.ScheduleID) == "" {
		missing = append(missing, "currentSchedule")
	}
	if r.ConfidenceUpdates == nil {
		missing = append(missing, "confidenceUpdates")
	}
	if r.CurrentWeek == nil {
		missing = append(missing, "currentWeek")
	}
	if len(missing) > 0 {
		return ValidationError("Missing required fields: "+strings.Join(missing, ", "), "")
	}
	if len(r.ConfidenceUpdates) == 0 {
		return ValidationError("At least one confidence update is required", "")
	}

	var problems []string
	if *r.CurrentWeek < 1 {
		problems = append(problems, fmt.Sprintf("currentWeek %d must be at least 1", *r.CurrentWeek))
	}
	for i, u := range r.ConfidenceUpdates {
		label := fmt.Sprintf("confidenceUpdates[%d]", i)
		if strings.TrimSpace(u.TopicID) == "" && strings.TrimSpace(u.TopicName) == "" {
			problems = append(problems, label+": topicId or topicName is required")
		}
		if !validConfidence(u.OldConfidence) || !validConfidence(u.NewConfidence) {
			problems = append(problems, fmt.Sprintf("%s: confidence %d → %d is outside 1..5", label, u.OldConfidence, u.NewConfidence))
		}
	}
	if len(problems) > 0 {
		return ValidationError("Invalid adaptation request", strings.Join(problems, "; "))
	}
	return nil
}

func validConfidence(c int) bool {
	return c >= minConfidence && c <= maxConfidence
}
