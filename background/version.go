package background

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Masterminds/semver"
)

// VersionChecker periodically compares the running version against the
// latest GitHub release and logs when an update is available. Check
// failures are logged and never fatal.
type VersionChecker struct {
	current *semver.Version
	repo    string
	tick    chan time.Time
}

type release struct {
	TagName string `json:"tag_name"`
}

func NewVersionCheck(current string, repo string) (*VersionChecker, error) {
	sem, err := semver.NewVersion(current)
	if err != nil {
		return nil, err
	}
	tick := make(chan time.Time, 1)
	tick <- time.Now()

	return &VersionChecker{
		current: sem,
		repo:    repo,
		tick:    tick,
	}, nil
}

func (v *VersionChecker) String() string {
	return "VersionChecker"
}

func (v *VersionChecker) Serve(haltCtx context.Context) error {
	log.Println("[VersionChecker] starting checker loop")

	go func() {
		ticker := time.NewTicker(time.Hour * 24)
		defer ticker.Stop()
		for {
			select {
			case t := <-ticker.C:
				v.tick <- t
			case <-haltCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-haltCtx.Done():
			log.Println("[VersionChecker] stopping checker loop")
			return nil
		case <-v.tick:
			latest, err := v.getLatest()
			if err != nil {
				log.Printf("[VersionChecker] error checking for new version: %+v\n", err)
				continue
			}
			if latest.GreaterThan(v.current) {
				log.Printf("[VersionChecker] a newer release is available: %s\n", latest.String())
			}
		}
	}
}

func (v *VersionChecker) getLatest() (*semver.Version, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", v.repo)
	client := http.Client{
		Timeout: time.Second * 5,
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, getErr := client.Do(req)
	if getErr != nil {
		return nil, getErr
	}
	defer res.Body.Close()

	var r release
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	return semver.NewVersion(r.TagName)
}
