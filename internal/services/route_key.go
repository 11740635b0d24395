package services

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
)

const routeKeyPrefix = "route:v1:"

// RouteKey derives a cache key from everything that determines a route:
// stop ids and coordinates in input order plus the effective options.
// Stop names do not affect the route and are left out.
func RouteKey(stops []domain.Stop, opts optimizer.Options) string {
	h := xxhash.New()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	writeUint(uint64(len(stops)))
	for _, s := range stops {
		writeUint(uint64(len(s.ID)))
		_, _ = h.WriteString(s.ID)
		writeUint(math.Float64bits(s.Lat))
		writeUint(math.Float64bits(s.Lng))
	}

	closed := uint64(0)
	if opts.ClosedTour {
		closed = 1
	}
	writeUint(closed)
	writeUint(uint64(opts.ExactThreshold))
	writeUint(uint64(opts.MaxTwoOptPasses))

	return routeKeyPrefix + strconv.FormatUint(h.Sum64(), 16)
}
