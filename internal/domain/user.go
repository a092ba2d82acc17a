package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ProfileKeys are the informational per-user fields worth showing in debug
// output. Their types are whatever the server sent.
var ProfileKeys = []string{"display_name", "username", "avatar_url", "follower_count", "video_count", "added_at", "session_expires_at"}

type UserRecord struct {
	OpenID      string `json:"open_id"`
	AccessToken string `json:"access_token"`

	// Everything else the server attached to the user, decoded without a
	// schema so an unexpected type never fails the report.
	Profile map[string]any `json:"-"`
}

func (u *UserRecord) UnmarshalJSON(data []byte) error {
	type record UserRecord

	var base record
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}

	var profile map[string]any
	if err := json.Unmarshal(data, &profile); err != nil {
		return err
	}
	delete(profile, "open_id")
	delete(profile, "access_token")

	*u = UserRecord(base)
	u.Profile = profile

	return nil
}

type UsersResponse struct {
	Success           bool         `json:"success,omitempty"`
	Users             []UserRecord `json:"users"`
	CurrentUserOpenID string       `json:"current_user_open_id"`
}

var errNullBody = errors.New("response body is null")

// DecodeUsers parses a raw /api/users body. A JSON null for
// current_user_open_id decodes to the empty string; a null body is an error.
func DecodeUsers(body []byte) (UsersResponse, error) {
	var resp UsersResponse

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return UsersResponse{}, fmt.Errorf("decode users: %w", errNullBody)
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return UsersResponse{}, fmt.Errorf("decode users: %w", err)
	}

	return resp, nil
}

// CurrentUser picks the record to report. The first record whose open_id
// equals a non-empty CurrentUserOpenID wins; otherwise the first record is
// used, so records without an open_id are never matched.
// matched reports which of the two happened, ok is false for an empty list.
func (r UsersResponse) CurrentUser() (user UserRecord, matched bool, ok bool) {
	if len(r.Users) == 0 {
		return UserRecord{}, false, false
	}

	if r.CurrentUserOpenID == "" {
		return r.Users[0], false, true
	}

	user, matched = lo.Find(r.Users, func(item UserRecord) bool {
		return item.OpenID == r.CurrentUserOpenID
	})
	if !matched {
		return r.Users[0], false, true
	}

	return user, true, true
}
