package content

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"study-game/internal/logger"
	"study-game/internal/normalize"

	"go.uber.org/zap"
)

// PackService lists and loads packs from a Storage backend. Concurrent
// loads of the same slug are collapsed into one storage fetch.
type PackService struct {
	storage Storage
	group   singleflight.Group
}

func NewPackService(storage Storage) *PackService {
	return &PackService{storage: storage}
}

// List enumerates available packs in curated display order.
func (s *PackService) List(ctx context.Context) ([]PackInfo, error) {
	slugs, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]PackInfo, 0, len(slugs))
	for _, slug := range slugs {
		subject, _ := ParseSubjectGrade(slug)
		grade := ""
		if parts := splitSlug(slug); len(parts) > 1 {
			grade = parts[1]
		}
		items = append(items, PackInfo{
			Slug:    slug,
			Title:   TitleFor(slug, ""),
			Subject: subject,
			Grade:   grade,
		})
	}

	sort.Slice(items, func(i, j int) bool { return lessPack(items[i], items[j]) })
	return items, nil
}

// Load fetches and decodes one pack. The slug must already be validated.
func (s *PackService) Load(ctx context.Context, slug string) (*Pack, error) {
	v, err, shared := s.group.Do(slug, func() (any, error) {
		data, err := s.storage.Get(ctx, slug)
		if err != nil {
			return nil, err
		}
		return DecodeCSV(slug, data)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("pack load shared between requests", zap.String("slug", slug))
	}
	return v.(*Pack), nil
}

// Upload validates and stores a CSV pack. The data is decoded first so a
// malformed file is rejected before it replaces anything.
func (s *PackService) Upload(ctx context.Context, slug string, data []byte) (*Pack, error) {
	pack, err := DecodeCSV(slug, data)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Put(ctx, slug, data); err != nil {
		return nil, err
	}
	logger.Get().Info("pack uploaded", zap.String("slug", slug), zap.Int("rows", len(pack.Rows)))
	return pack, nil
}

func splitSlug(slug string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(slug); i++ {
		if i == len(slug) || slug[i] == '/' {
			if i > start {
				parts = append(parts, slug[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

// SampleSpec controls how many rows a quiz session draws from a pack.
// N > 0 requests an exact count and overrides the min/max window; an
// empty Seed means a time-based shuffle, a non-empty one a reproducible
// shuffle.
type SampleSpec struct {
	N    int
	Min  int
	Max  int
	Seed string
}

// SampleRows picks and shuffles a subset of rows per spec. The input
// slice is never mutated.
func SampleRows(rows []normalize.Record, spec SampleSpec) []normalize.Record {
	total := len(rows)
	if total == 0 {
		return nil
	}

	rnd := rand.New(rand.NewSource(seedValue(spec.Seed)))

	var k int
	if spec.N > 0 {
		k = clamp(spec.N, 1, total)
	} else {
		lo, hi := spec.Min, spec.Max
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo < 1 {
			lo = 1
		}
		if hi < lo {
			hi = lo
		}
		k = rnd.Intn(hi-lo+1) + lo
		if k > total {
			k = total
		}
	}

	shuffled := make([]normalize.Record, total)
	copy(shuffled, rows)
	rnd.Shuffle(total, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k]
}

func seedValue(seed string) int64 {
	if seed == "" {
		return time.Now().UnixNano()
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
