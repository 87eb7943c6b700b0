package title

// ScoreWeights holds every tunable constant of the title scorer so the
// weights can be adjusted and unit-tested independently of the scoring
// control flow.
type ScoreWeights struct {
	// Position: earlier OCR lines are likelier titles.
	PositionPerLine float64 // points per line above the window floor
	PositionWindow  int     // lines that still earn position points

	// Length, in runes.
	LengthIdealMin int
	LengthIdealMax int
	LengthSoftMax  int
	LengthIdeal    float64 // within [IdealMin, IdealMax]
	LengthSoft     float64 // within (IdealMax, SoftMax]
	LengthPenalty  float64 // beyond SoftMax

	// Japanese character ratio.
	JapaneseHighRatio float64
	JapaneseMidRatio  float64
	JapaneseHigh      float64
	JapaneseMid       float64
	JapaneseLow       float64

	// Shape signals.
	SentenceMinLen  int     // runes before sentence detection applies
	SentencePenalty float64 // reads like prose, not a title
	NoPunctBonus    float64
	MonthBonus      float64
	KeywordBonus    float64
	MonthHintBonus  float64

	// Selection thresholds.
	MinScore         float64
	MinJapaneseRatio float64
	MaxTitleLen      int // runes, truncation cap
}

// DefaultWeights are the production weights, tuned against a corpus of
// scanned kindergarten and school newsletters.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		PositionPerLine: 0.8,
		PositionWindow:  10,

		LengthIdealMin: 4,
		LengthIdealMax: 20,
		LengthSoftMax:  28,
		LengthIdeal:    2,
		LengthSoft:     0.5,
		LengthPenalty:  -2,

		JapaneseHighRatio: 0.8,
		JapaneseMidRatio:  0.6,
		JapaneseHigh:      1.5,
		JapaneseMid:       0.5,
		JapaneseLow:       -0.5,

		SentenceMinLen:  26,
		SentencePenalty: -2,
		NoPunctBonus:    0.5,
		MonthBonus:      1,
		KeywordBonus:    1,
		MonthHintBonus:  0.5,

		MinScore:         2.5,
		MinJapaneseRatio: 0.6,
		MaxTitleLen:      24,
	}
}
