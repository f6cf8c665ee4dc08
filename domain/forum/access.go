package forum

import (
	"fmt"
	"strings"

	appErrors "forum-backend/pkg/errors"
)

// CheckChannelAccess decides whether actor may read or post in the
// channel. Public channels admit everyone; private channels require a
// case-insensitive participant match. The caller is responsible for
// reporting a missing channel as not-found before evaluating access.
func CheckChannelAccess(channel *Channel, actor string) error {
	if channel.Visibility != VisibilityPrivate {
		return nil
	}
	for _, p := range channel.Participants {
		if strings.EqualFold(p.Name, actor) {
			return nil
		}
	}
	return appErrors.NewForbiddenError(
		fmt.Sprintf("access denied: user %s does not have access to channel %s", actor, channel.Name))
}
