package domain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	LabelAccessToken = "access token"
	LabelOpenID      = "Open ID"
)

type Report struct {
	AccessToken string
	OpenID      string
	Matched     bool
}

type Reporter struct {
	source UsersSource
	sink   Sink
}

type IReporter interface {
	Run(context.Context) (Report, bool, error)
}

func NewReporter(source UsersSource, sink Sink) IReporter {
	return &Reporter{
		source: source,
		sink:   sink,
	}
}

// Run fetches the user list once and writes the current user's access token
// and open id to the sink. The bool result is false when the list was empty
// and nothing was written. Fetch and decode failures are returned as is:
// there is no retry and nothing is written.
func (r *Reporter) Run(ctx context.Context) (Report, bool, error) {
	resp, err := r.source.FetchUsers(ctx)
	if err != nil {
		return Report{}, false, fmt.Errorf("fetch users: %w", err)
	}

	user, matched, ok := resp.CurrentUser()
	if !ok {
		log.Debug().Msg("no users in response")
		return Report{}, false, nil
	}

	log.Debug().
		Int("users", len(resp.Users)).
		Bool("matched", matched).
		Str("open_id", user.OpenID).
		Fields(lo.PickByKeys(user.Profile, ProfileKeys)).
		Msg("selected user")

	if err := r.sink.Log(LabelAccessToken, user.AccessToken); err != nil {
		return Report{}, false, fmt.Errorf("sink: %w", err)
	}
	if err := r.sink.Log(LabelOpenID, user.OpenID); err != nil {
		return Report{}, false, fmt.Errorf("sink: %w", err)
	}

	return Report{
		AccessToken: user.AccessToken,
		OpenID:      user.OpenID,
		Matched:     matched,
	}, true, nil
}
