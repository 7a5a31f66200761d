package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platefeed/engagement/domain"
)

func TestEventTypeValid(t *testing.T) {
	known := []domain.EventType{
		domain.EventView,
		domain.EventComment,
		domain.EventFavorite,
		domain.EventUnsaved,
		domain.EventLike,
		domain.EventUnlike,
		domain.EventCommentEdited,
		domain.EventCommentDeleted,
	}
	for _, et := range known {
		assert.True(t, et.Valid(), "expected %q to be valid", et)
	}

	for _, et := range []domain.EventType{"", "View", "share", "comment-edited"} {
		assert.False(t, et.Valid(), "expected %q to be invalid", et)
	}
}
