package magic

import (
	"context"
	"fmt"
	"math/bits"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/fgantt/yse-sub003/internal/board"
)

// occupancySet lists every subset of a square's relevant mask together
// with its folded key and the ray-cast attack set it must decode to.
type occupancySet struct {
	mask    board.Bitboard
	fold    uint8
	keys    []uint64
	occ     []board.Bitboard
	attacks []board.Bitboard
}

// chooseFold picks the largest left shift that moves the high word of mask
// onto bits the low word does not use, without shifting any bit out.
func chooseFold(mask board.Bitboard) (uint8, error) {
	hi := mask.Hi()
	if hi == 0 {
		return 0, nil
	}
	for f := 64 - bits.Len64(hi); f >= 0; f-- {
		if (hi<<f)&mask.Lo() == 0 {
			return uint8(f), nil
		}
	}
	return 0, fmt.Errorf("no fold for mask %s", mask.Hex())
}

// indexToOccupancy converts an index to an occupancy bitboard.
func indexToOccupancy(index int, squares []board.Square) board.Bitboard {
	var occ board.Bitboard
	for i, sq := range squares {
		if index&(1<<i) != 0 {
			occ = occ.Set(sq)
		}
	}
	return occ
}

func newOccupancySet(sq board.Square, s board.Slider) (*occupancySet, error) {
	mask := board.RelevantMask(sq, s)
	fold, err := chooseFold(mask)
	if err != nil {
		return nil, err
	}

	squares := mask.Squares()
	n := 1 << len(squares)
	set := &occupancySet{
		mask:    mask,
		fold:    fold,
		keys:    make([]uint64, n),
		occ:     make([]board.Bitboard, n),
		attacks: make([]board.Bitboard, n),
	}

	rc := board.NewRayCaster()
	for i := 0; i < n; i++ {
		occ := indexToOccupancy(i, squares)
		set.occ[i] = occ
		set.keys[i] = occ.Lo() | occ.Hi()<<fold
		set.attacks[i] = rc.Attacks(sq, s, occ)
	}
	return set, nil
}

// squareSeed derives an independent, reproducible seed per slider and
// square (splitmix64 finalizer), so squares can be searched in parallel.
func squareSeed(seed uint64, s board.Slider, sq board.Square) uint64 {
	z := seed + uint64(s)<<8 + uint64(sq) + 1
	z *= 0x9E3779B97F4A7C15
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

// searchResult is a found magic for one square, before offsets are assigned.
type searchResult struct {
	entry   Entry
	attacks []board.Bitboard
}

// searchStages is the number of index widths the search walks through,
// starting at the minimal width. Each stage gets an equal share of the
// retry budget.
const searchStages = 4

// findMagic runs the randomized search for one square. It tries sparse
// random multipliers at the minimal index width, then widens the index by
// one bit per stage. A multiplier is accepted only if every subset lands
// on a slot that holds its exact attack set; subsets with equal attack
// sets may share a slot.
func findMagic(ctx context.Context, sq board.Square, s board.Slider, seed uint64, budget int) (*searchResult, error) {
	set, err := newOccupancySet(sq, s)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(squareSeed(seed, s, sq)))
	maskKey := set.mask.Lo() | set.mask.Hi()<<set.fold
	minBits := bits.Len(uint(len(set.keys) - 1))
	if minBits == 0 {
		minBits = 1
	}

	// Slots are claimed with an epoch stamp so the scratch arrays are
	// never cleared between attempts.
	maxBits := minBits + searchStages - 1
	epoch := make([]uint32, 1<<maxBits)
	used := make([]board.Bitboard, 1<<maxBits)

	for attempt := 0; attempt < budget; attempt++ {
		if attempt&0xfff == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		stage := int(int64(attempt) * searchStages / int64(budget))
		indexBits := minBits + stage
		shift := uint8(64 - indexBits)

		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		// At the minimal width only multipliers that spread the mask
		// across the top byte are worth checking.
		if stage == 0 && bits.OnesCount64((maskKey*magic)&0xFF00000000000000) < 6 {
			continue
		}

		stamp := uint32(attempt + 1)
		ok := true
		for i, key := range set.keys {
			idx := (key * magic) >> shift
			if epoch[idx] != stamp {
				epoch[idx] = stamp
				used[idx] = set.attacks[i]
			} else if used[idx] != set.attacks[i] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		size := 1 << indexBits
		attacks := make([]board.Bitboard, size)
		for i := 0; i < size; i++ {
			if epoch[i] == stamp {
				attacks[i] = used[i]
			}
		}
		return &searchResult{
			entry: Entry{
				Mask:  set.mask,
				Magic: magic,
				Fold:  set.fold,
				Shift: shift,
			},
			attacks: attacks,
		}, nil
	}

	return nil, fmt.Errorf("%w: %v square %v after %d attempts", ErrRetryBudget, s, sq, budget)
}

// tableNamespace scopes the name-based table IDs.
var tableNamespace = uuid.MustParse("5f1c2b7e-9a4d-4c3e-8b61-0d2e7f9a8c45")

// tableID names the table a search with seed and budget produces. The
// search is deterministic, so equal inputs yield equal tables and IDs.
func tableID(seed uint64, budget int) uuid.UUID {
	return uuid.NewSHA1(tableNamespace, fmt.Appendf(nil, "sliders/v%d/seed=%#x/budget=%d", formatVersion, seed, budget))
}

// Generate builds a new table by searching a magic for every square of
// both sliders, then validates it. The result, ID included, depends only
// on Seed and RetryBudget.
func Generate(opts Options) (*Table, error) {
	budget := opts.RetryBudget
	if budget <= 0 {
		budget = DefaultRetryBudget
	}

	var results [board.NumSliders][board.NumSquares]*searchResult

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for s := board.Slider(0); s < board.NumSliders; s++ {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			g.Go(func() error {
				r, err := findMagic(ctx, sq, s, opts.Seed, budget)
				if err != nil {
					return err
				}
				results[s][sq] = r
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &Table{ID: tableID(opts.Seed, budget), Seed: opts.Seed}
	total := 0
	for s := range results {
		for sq := range results[s] {
			total += len(results[s][sq].attacks)
		}
	}
	t.attacks = make([]board.Bitboard, 0, total)

	// Offsets are laid out rook squares first, then bishop squares.
	for s := range results {
		for sq, r := range results[s] {
			r.entry.Offset = uint32(len(t.attacks))
			t.entries[s][sq] = r.entry
			t.attacks = append(t.attacks, r.attacks...)
		}
	}

	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}
