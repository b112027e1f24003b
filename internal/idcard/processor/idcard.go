package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/domain"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/ocr"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/textproc"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

// IDCard reconciles the two OCR engines' readings of a card into a
// FieldRecord. State selection keys on the general engine's line count:
// a clean capture yields exactly domain.FullReadLineCount lines and
// fields can be taken positionally; anything else is a degraded read
// recovered from the deep engine's fragments.
type IDCard struct {
	general ocr.LineReader
	deep    ocr.ThresholdLineReader
	regions ocr.RegionProvider
	log     *logger.Logger
}

// NewIDCard creates the card processor. Engines and region provider are
// injected and constructed once at startup; the processor itself holds
// no per-image state.
func NewIDCard(general ocr.LineReader, deep ocr.ThresholdLineReader, regions ocr.RegionProvider, log *logger.Logger) *IDCard {
	return &IDCard{
		general: general,
		deep:    deep,
		regions: regions,
		log:     log.WithComponent("idcard_processor"),
	}
}

func (p *IDCard) Name() string { return "idcard" }

// Process runs the full extraction for one card image.
func (p *IDCard) Process(ctx context.Context, image []byte) (rec *domain.FieldRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("panic during extraction")
			rec = nil
			err = fmt.Errorf("idcard: panic during extraction: %v", r)
		}
	}()

	regions, err := p.regions.Regions(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("idcard: crop regions: %w", err)
	}

	generalLines, err := p.general.ReadLines(ctx, regions.Text)
	if err != nil {
		return nil, fmt.Errorf("idcard: general engine: %w", err)
	}
	deepLines, err := p.deep.ReadLines(ctx, regions.Text, ocr.NameRegionThresholds)
	if err != nil {
		return nil, fmt.Errorf("idcard: deep engine: %w", err)
	}

	// The identifier strip gets its own read with sharper binarization
	// upstream and far more sensitive detector thresholds.
	idLines, err := p.deep.ReadLines(ctx, regions.ID, ocr.IDRegionThresholds)
	if err != nil {
		return nil, fmt.Errorf("idcard: deep engine id region: %w", err)
	}

	rec = domain.NewFieldRecord()
	if len(generalLines) == domain.FullReadLineCount {
		rec.State = domain.ReadStateFull
		p.fullRead(rec, generalLines, deepLines)
	} else {
		rec.State = domain.ReadStateDegraded
		p.degradedRead(rec, generalLines, deepLines)
		if len(idLines) == 0 && len(deepLines) == 0 {
			rec.State = domain.ReadStateFailed
			rec.Error = 1
		}
	}

	idText := identifierText(idLines)
	p.finalize(rec, idText)

	p.log.Info().
		Str("state", string(rec.State)).
		Int("error", rec.Error).
		Int("general_lines", len(generalLines)).
		Int("deep_fragments", len(deepLines)).
		Msg("card extraction completed")
	return rec, nil
}

// fullRead takes fields positionally from the clean 8-line layout:
// names on lines 0 and 2, address halves on lines 4 and 6.
func (p *IDCard) fullRead(rec *domain.FieldRecord, lines, deepLines []string) {
	rec.FirstName = lines[0]
	rec.SecondName = lines[2]

	addrGeneral := lines[4] + " " + lines[6]
	addrDeep := joinFromThird(deepLines)

	rec.Address = textproc.CollapseDuplicates(textproc.ChooseAddress(addrGeneral, addrDeep))
}

// degradedRead recovers names from the deep engine's first two fragments
// and reconciles the address from whatever both engines produced past
// the name lines.
func (p *IDCard) degradedRead(rec *domain.FieldRecord, lines, deepLines []string) {
	var nonEmpty []string
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	addrGeneral := ""
	if len(nonEmpty) > 2 {
		addrGeneral = strings.Join(nonEmpty[2:], " ")
	}

	if len(deepLines) == 0 {
		return
	}
	rec.FirstName = deepLines[0]
	if len(deepLines) > 1 {
		rec.SecondName = deepLines[1]
	}
	addrDeep := joinFromThird(deepLines)
	rec.Address = textproc.CollapseDuplicates(textproc.ChooseAddress(addrGeneral, addrDeep))
}

// finalize applies the shared post-processing: name cleanup, artifact
// stripping, plausibility flags, then the identifier and birth date,
// which depend on the already-assembled identifier text.
func (p *IDCard) finalize(rec *domain.FieldRecord, idText string) {
	rec.FirstName = stripDigitsAndPunct(rec.FirstName)
	rec.SecondName = stripDigitsAndPunct(rec.SecondName)
	rec.Address = artifactReplacer.Replace(rec.Address)

	// A given name splitting into more than three words, or a family
	// name of at most one word, signals a failed line split.
	if len(strings.Fields(rec.FirstName)) > 3 {
		rec.Error = 1
	}
	if len(strings.Fields(rec.SecondName)) <= 1 {
		rec.Error = 1
	}

	rec.ID = textproc.CleanID(idText)
	rec.Birthdate = textproc.BirthdateFromID(rec.ID)
}

// identifierText condenses the identifier region read into one string:
// the single line when there is one, the longest fragment when the read
// split, the sentinel when it produced nothing.
func identifierText(idLines []string) string {
	switch len(idLines) {
	case 0:
		return "0"
	case 1:
		return idLines[0]
	default:
		return textproc.LongestLine(idLines)
	}
}

// joinFromThird joins the deep engine's fragments past the two name
// lines, or all of them when the read is too short to have name lines.
func joinFromThird(deepLines []string) string {
	if len(deepLines) > 2 {
		return strings.Join(deepLines[2:], " ")
	}
	return strings.Join(deepLines, " ")
}

var artifactReplacer = strings.NewReplacer("[", "", "]", "", "'", "")

// stripDigitsAndPunct removes Arabic-indic digits and ASCII punctuation
// from a name. Latin noise is left for the sanitizers upstream; names
// come from raw lines and only carry these two artifact classes.
func stripDigitsAndPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if textproc.IsArabicDigit(r) || strings.ContainsRune(namePunct, r) {
			return -1
		}
		return r
	}, s)
}

const namePunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
