package battle

// Faction identifies one side of a battle, using the upstream naming.
type Faction string

const (
	FactionAngel Faction = "angel"
	FactionDevil Faction = "devil"
)

const (
	UnknownGuild      = "N/A"
	ParseErrorName    = "parse error"
	displayDateLayout = "02/01"
)

// Record is one scheduled battle slot. It is created as a forecast and later
// resolved once the upstream history reports the winner.
type Record struct {
	SequenceNumber int64  `json:"sequenceNumber"`
	BattleID       string `json:"battleId"`
	Date           string `json:"date"`
	Hour           string `json:"hour"`
	AngelScore     int64  `json:"angelScore"`
	DevilScore     int64  `json:"devilScore"`
	AngelRemaining int64  `json:"angelRemaining"`
	DevilRemaining int64  `json:"devilRemaining"`
	WinningFaction string `json:"winningFaction"`
	WinningTotal   int64  `json:"winningTotal"`
}

func (r Record) Resolved() bool {
	return r.WinningFaction != ""
}

// Contribution is one player's score toward a faction total.
type Contribution struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
	Guild string `json:"guild"`
}

func ParseErrorContribution() Contribution {
	return Contribution{Name: ParseErrorName, Score: 0, Guild: UnknownGuild}
}
