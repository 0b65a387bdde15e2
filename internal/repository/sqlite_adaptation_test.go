package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/testutil"
)

func TestAdaptationRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	schedules := NewSQLiteScheduleRepo(db)
	adaptations := NewSQLiteAdaptationRepo(db)
	ctx := context.Background()

	require.NoError(t, schedules.Save(ctx, testSchedule("sched-1", 1), ""))
	require.NoError(t, schedules.Save(ctx, testSchedule("sched-1", 2), ""))

	rec := &AdaptationRecord{
		ID:          "adapt-1",
		ScheduleID:  "sched-1",
		FromVersion: 1,
		ToVersion:   2,
		CurrentWeek: 1,
		Updates: []domain.ConfidenceUpdate{{
			TopicID: "t01", TopicName: "Limits", SubjectName: "Mathematics", OldConfidence: 4, NewConfidence: 2, WeekNumber: 1,
		}},
		Insights: []domain.AdaptationInsight{{
			TopicRef:   domain.TopicRef{TopicID: "t01", TopicName: "Limits", SubjectName: "Mathematics"},
			ChangeType: domain.ChangeTimeIncreased, OldHours: 2, NewHours: 4, Reasoning: "More practice",
		}},
	}
	require.NoError(t, adaptations.Create(ctx, rec))

	got, err := adaptations.ListBySchedule(ctx, "sched-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.Updates, got[0].Updates)
	assert.Equal(t, rec.Insights, got[0].Insights)
	assert.Equal(t, 2, got[0].ToVersion)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestAdaptationRepo_RequiresStoredTargetVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	adaptations := NewSQLiteAdaptationRepo(db)

	err := adaptations.Create(context.Background(), &AdaptationRecord{
		ID: "adapt-1", ScheduleID: "sched-1", FromVersion: 1, ToVersion: 2,
	})
	assert.Error(t, err)
}

func TestAdaptationRepo_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)

	got, err := NewSQLiteAdaptationRepo(db).ListBySchedule(context.Background(), "none")
	require.NoError(t, err)
	assert.Empty(t, got)
}
