package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"storymap/internal/infra/logx"
	"storymap/internal/story"
)

// Result is a validated story list plus the records that were dropped.
type Result struct {
	Stories  []story.Story
	Rejected []story.Rejection
	Metrics  MetricsSnapshot
}

// Options tunes Load.
type Options struct {
	// Token is sent as Authorization header for http(s) refs.
	Token string
	// PerPage overrides the backend page size.
	PerPage int
}

// IsRemote reports whether ref points at an http(s) endpoint.
func IsRemote(ref string) bool {
	r := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://")
}

// Load reads and validates the story list named by ref, a URL or a path.
func Load(ctx context.Context, ref string, opt Options) (Result, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Result{}, fmt.Errorf("no story source configured")
	}

	var (
		res Result
		err error
	)
	if IsRemote(ref) {
		c := NewClient(ref, opt.Token)
		if opt.PerPage > 0 {
			c.perPage = opt.PerPage
		}
		var raw []story.RawStory
		raw, err = c.FetchRaw(ctx)
		res.Metrics = c.MetricsSnapshot()
		if err != nil {
			return Result{}, err
		}
		res.Stories, res.Rejected = story.Validate(raw)
	} else {
		res.Stories, res.Rejected, err = readFile(ref)
		if err != nil && !errors.Is(err, story.ErrNoStories) {
			return Result{}, err
		}
	}

	if joined := story.JoinRejections(res.Rejected); joined != nil {
		logx.Warnf("skipping stories from %s:\n%v", ref, joined)
	}
	if len(res.Stories) == 0 {
		return res, fmt.Errorf("%s: %w", ref, story.ErrNoStories)
	}
	logx.Info("stories loaded", logx.Fields{
		"source":   ref,
		"stories":  len(res.Stories),
		"skipped":  len(res.Rejected),
		"requests": res.Metrics.TotalRequests,
	})
	return res, nil
}

func readFile(path string) ([]story.Story, []story.Rejection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open stories: %w", err)
	}
	defer f.Close()
	stories, rejected, err := story.Decode(f, story.FormatFromPath(path))
	if err != nil && !errors.Is(err, story.ErrNoStories) {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return stories, rejected, err
}
