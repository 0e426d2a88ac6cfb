package games

import (
	"errors"
	"fmt"
	"time"

	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/drag"
	"ailab/internal/media"
	"ailab/internal/sequencer"
)

const (
	sortingPerCategory = 3
	bannerVisible      = 4 * time.Second
	sortedPause        = 500 * time.Millisecond
	sortingLoading     = 2 * time.Second
	generationTime     = 2 * time.Second
)

var sortingTable = domain.TransitionTable{
	domain.PhaseIntro:       {domain.PhaseInteractive},
	domain.PhaseInteractive: {domain.PhaseFeedback, domain.PhaseLoading},
	domain.PhaseFeedback:    {domain.PhaseInteractive},
	domain.PhaseLoading:     {domain.PhaseRequesting},
	domain.PhaseRequesting:  {domain.PhaseComplete},
}

// Sorting is Data Detective: drop twelve examples on their data category,
// then ask the AI to generate one example of each category.
type Sorting struct {
	*controller
	source      *catalog.Source[domain.Item]
	banner      string
	bannerClear sequencer.Ticket
	generated   map[string]string
	generating  map[string]bool
}

// NewSorting creates a Data Detective game waiting on its start screen
func NewSorting(opts Options) *Sorting {
	opts = opts.withDefaults()
	g := &Sorting{}
	g.controller = newController(rules{
		kind:  KindSorting,
		table: sortingTable,
		board: domain.BoardConfig{
			Zones:          catalog.DataCategoryKeys(),
			RetryIncorrect: true,
			EscalateAfter:  opts.EscalateAfter,
		},
		stage: StageReady,
	}, opts, nil)
	g.source = catalog.NewSource(catalog.DataItems(), g.opts.Rand)
	g.drop = g.onDrop
	g.clearState()
	return g
}

// Handle applies one player command
func (g *Sorting) Handle(cmd Command) error {
	if err := g.checkOpen(); err != nil {
		return err
	}

	switch cmd := cmd.(type) {
	case Start:
		return g.start()
	case RequestGeneration:
		return g.requestGeneration(cmd.Category)
	case Reset:
		g.Reset()
		return nil
	default:
		return g.handleCommon(cmd, g.Snapshot)
	}
}

func (g *Sorting) start() error {
	if !g.machine.Is(domain.PhaseIntro) {
		return fmt.Errorf("start: %w", domain.ErrInvalidPhase)
	}

	items, err := catalog.SampleByCategory(g.source, catalog.DataCategoryKeys(), sortingPerCategory)
	if err != nil {
		return fmt.Errorf("sample items: %w", err)
	}
	g.board.Reset(items)

	if err := g.transition(domain.PhaseInteractive); err != nil {
		return err
	}
	g.emit(domain.StateSynced{State: g.Snapshot()})
	return nil
}

func (g *Sorting) onDrop(d drag.Drop) error {
	if !d.Found {
		g.logger.Debug("item dropped outside any zone", "item", d.Item)
		return nil
	}
	if _, ok := catalog.DataCategory(d.Zone); !ok {
		g.logger.Debug("item dropped on unknown zone", "item", d.Item, "zone", d.Zone)
		return nil
	}

	if err := g.beginEvaluation(); err != nil {
		return err
	}
	out, err := g.evaluate(d.Item, d.Zone)
	if err != nil {
		return errors.Join(err, g.endEvaluation(domain.PhaseInteractive))
	}

	if out.Correct {
		g.media.Play(media.SortCorrect)
		g.hideBanner()
	} else {
		g.media.Play(media.SortWrong)
		g.showBanner(wrongZoneText(out.Item, d.Zone))
	}

	if err := g.endEvaluation(domain.PhaseInteractive); err != nil {
		return err
	}
	if g.board.Exhausted() {
		g.afterIn(domain.PhaseInteractive, sortedPause, "sorting.sorted", g.enterLoading)
	}
	return nil
}

func wrongZoneText(item domain.Item, zone string) string {
	right, _ := catalog.DataCategory(item.Category)
	wrong, _ := catalog.DataCategory(zone)
	return fmt.Sprintf("❌ \"%s\" belongs in %s, not %s!", item.Label, right.Name, wrong.Name)
}

func (g *Sorting) showBanner(text string) {
	g.seq.Cancel(g.bannerClear)
	g.banner = text
	g.emit(domain.BannerChanged{Text: text, Visible: true})

	g.bannerClear = g.after(bannerVisible, "sorting.banner", func() error {
		g.hideBanner()
		return nil
	})
}

func (g *Sorting) hideBanner() {
	g.seq.Cancel(g.bannerClear)
	if g.banner == "" {
		return
	}
	g.banner = ""
	g.emit(domain.BannerChanged{})
}

func (g *Sorting) enterLoading() error {
	if err := g.transition(domain.PhaseLoading); err != nil {
		return err
	}
	g.afterIn(domain.PhaseLoading, sortingLoading, "sorting.loading", func() error {
		return g.transition(domain.PhaseRequesting)
	})
	return nil
}

func (g *Sorting) requestGeneration(category string) error {
	if !g.machine.Is(domain.PhaseRequesting) {
		return fmt.Errorf("generate %q: %w", category, domain.ErrInvalidPhase)
	}
	if _, ok := catalog.DataCategory(category); !ok {
		return fmt.Errorf("generate %q: %w", category, domain.ErrUnknownZone)
	}
	if _, done := g.generated[category]; done || g.generating[category] {
		return fmt.Errorf("generate %q: %w", category, domain.ErrAlreadyGenerated)
	}

	g.generating[category] = true
	g.emit(domain.GenerationQueued{Category: category})

	g.afterIn(domain.PhaseRequesting, generationTime, "sorting.generate."+category, func() error {
		symbols := catalog.Symbols(category)
		symbol := symbols[g.opts.Rand.IntN(len(symbols))]

		delete(g.generating, category)
		g.generated[category] = symbol
		g.emit(domain.Generated{Category: category, Symbol: symbol})

		if len(g.generated) == len(catalog.DataCategoryKeys()) {
			return g.transition(domain.PhaseComplete)
		}
		return nil
	})
	return nil
}

// Reset returns to the start screen with an empty board
func (g *Sorting) Reset() {
	g.resetBase(nil)
	g.clearState()
	g.emit(domain.StateSynced{State: g.Snapshot()})
}

func (g *Sorting) clearState() {
	g.banner = ""
	g.bannerClear = sequencer.Ticket{}
	g.generated = make(map[string]string)
	g.generating = make(map[string]bool)
}

// Close stops every timer and sound for good
func (g *Sorting) Close() {
	g.close()
}

// Snapshot returns the current view state
func (g *Sorting) Snapshot() Snapshot {
	s := g.baseSnapshot()

	state := &SortingState{
		Zones:      make(map[string][]domain.Item),
		Banner:     g.banner,
		Generated:  make(map[string]string, len(g.generated)),
		Generating: make([]string, 0),
	}
	for _, c := range catalog.DataCategoryKeys() {
		state.Zones[c] = g.board.Zone(c)
		if g.generating[c] {
			state.Generating = append(state.Generating, c)
		}
	}
	for c, sym := range g.generated {
		state.Generated[c] = sym
	}
	s.Sorting = state
	return s
}
