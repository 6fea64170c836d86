package event

import (
	"context"
	"testing"

	"github.com/lshigami/dailyquest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledPublisherIsNoop(t *testing.T) {
	p, err := NewEventPublisher(&config.Config{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	ctx := context.Background()
	assert.NoError(t, p.PublishMissionEvent(ctx, &MissionEvent{EventType: EventTypeMissionGenerated}))
	assert.NoError(t, p.PublishArchiveEvent(ctx, &ArchiveEvent{EventType: EventTypeMissionsArchived}))
	assert.NoError(t, p.PublishPracticeEvent(ctx, &PracticeEvent{EventType: EventTypePracticeCompleted}))
	assert.NoError(t, p.Close())
}
