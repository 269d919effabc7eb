// Package domain contains the backend response types for the arena context.
// JSON tags mirror the backend exactly; monetary fields stay base-unit
// strings until the UI formats them.
package domain

// GlobalStats is the /api/stats response.
type GlobalStats struct {
	TotalMatches    int    `json:"totalMatches"`
	ActiveMatches   int    `json:"activeMatches"`
	SettledMatches  int    `json:"settledMatches"`
	TotalAgents     int    `json:"totalAgents"`
	TotalBurned     string `json:"totalBurned"`
	TotalPoolVolume string `json:"totalPoolVolume"`
	TotalEarnings   string `json:"totalEarnings"`
	Last24hMatches  int    `json:"last24hMatches"`
	Last24hBurned   string `json:"last24hBurned"`
}

// Match phases as reported by the backend.
const (
	MatchPhaseQueue    = "queue"
	MatchPhaseRevealed = "revealed"
	MatchPhaseLive     = "live"
	MatchPhaseSettled  = "settled"
)

// MatchResponse is one match as returned by /api/matches and agent history.
type MatchResponse struct {
	MatchID         int     `json:"matchId"`
	Phase           string  `json:"phase"`
	EntryFee        string  `json:"entryFee"`
	AnswerFee       string  `json:"answerFee"`
	PoolTotal       string  `json:"poolTotal"`
	PlayerCount     int     `json:"playerCount"`
	QuestionText    string  `json:"questionText,omitempty"`
	Category        string  `json:"category,omitempty"`
	Difficulty      int     `json:"difficulty,omitempty"`
	FormatHint      string  `json:"formatHint,omitempty"`
	AnswerHash      string  `json:"answerHash,omitempty"`
	WinnerAddress   string  `json:"winnerAddress,omitempty"`
	GeneratorAgent  string  `json:"generatorAgent,omitempty"`
	RegistrationEnd string  `json:"registrationEnd,omitempty"`
	AnswerTimeout   string  `json:"answerTimeout,omitempty"`
	RevealedAnswer  string  `json:"revealedAnswer,omitempty"`
	RevealedSalt    string  `json:"revealedSalt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	SettledAt       string  `json:"settledAt,omitempty"`
	SettleTxHash    string  `json:"settleTxHash,omitempty"`
	AnswerCount     *int    `json:"answerCount,omitempty"`
	CommentaryCount *int    `json:"commentaryCount,omitempty"`
}

// LeaderboardEntry is one row of /api/leaderboard.
type LeaderboardEntry struct {
	Rank              int     `json:"rank"`
	AgentAddr         string  `json:"agentAddr"`
	MatchesWon        int     `json:"matchesWon"`
	MatchesPlayed     int     `json:"matchesPlayed"`
	WinRate           float64 `json:"winRate"`
	TotalEarnedMon    string  `json:"totalEarnedMon"`
	TotalBurnedNeuron string  `json:"totalBurnedNeuron"`
	ReputationScore   *float64 `json:"reputationScore,omitempty"`
}

// AgentStats is the stats block of an agent profile.
type AgentStats struct {
	AgentAddr         string   `json:"agentAddr"`
	MatchesPlayed     int      `json:"matchesPlayed"`
	MatchesWon        int      `json:"matchesWon"`
	WinRate           float64  `json:"winRate"`
	TotalEarnedMon    string   `json:"totalEarnedMon"`
	TotalEarnedNeuron string   `json:"totalEarnedNeuron"`
	TotalBurnedNeuron string   `json:"totalBurnedNeuron"`
	WrongAnswers      int      `json:"wrongAnswers"`
	CorrectAnswers    int      `json:"correctAnswers"`
	AnswerAccuracy    float64  `json:"answerAccuracy"`
	AvgAnswerTimeMs   *int     `json:"avgAnswerTimeMs,omitempty"`
	LastActive        string   `json:"lastActive,omitempty"`
	FirstSeen         string   `json:"firstSeen"`
	ERC8004Rating     *float64 `json:"erc8004Rating,omitempty"`
	ReputationScore   *float64 `json:"reputationScore,omitempty"`
}

// AgentProfile is the /api/agent/{addr} response.
type AgentProfile struct {
	Stats         AgentStats      `json:"stats"`
	RecentMatches []MatchResponse `json:"recentMatches"`
}

// AgentEconomics is the /api/agent/{addr}/economics response.
type AgentEconomics struct {
	AgentAddr            string  `json:"agentAddr"`
	NeuronBalance        string  `json:"neuronBalance"`
	TotalSpent           string  `json:"totalSpent"`
	TotalEarned          string  `json:"totalEarned"`
	NetPnl               string  `json:"netPnl"`
	MatchROI             float64 `json:"matchRoi"`
	BountyROI            float64 `json:"bountyRoi"`
	BountiesParticipated int     `json:"bountiesParticipated"`
	BountiesWon          int     `json:"bountiesWon"`
}

// AnswerResponse is one submitted answer for a match.
type AnswerResponse struct {
	ID            int     `json:"id"`
	MatchID       int     `json:"matchId"`
	AgentAddr     string  `json:"agentAddr"`
	AnswerText    string  `json:"answerText"`
	IsCorrect     *bool   `json:"isCorrect,omitempty"`
	Consensus     string  `json:"consensus,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	BlockNumber   int     `json:"blockNumber"`
	TxIndex       int     `json:"txIndex"`
	AttemptNumber int     `json:"attemptNumber"`
	NeuronBurned  string  `json:"neuronBurned"`
	TxHash        string  `json:"txHash,omitempty"`
	TotalScore    *float64 `json:"totalScore,omitempty"`
	Agreement     string  `json:"agreement,omitempty"`
	Reasoning     string  `json:"reasoning,omitempty"`
	SubmittedAt   string  `json:"submittedAt"`
	VerifiedAt    string  `json:"verifiedAt,omitempty"`
}

// CommentaryResponse is one judge/persona commentary line.
type CommentaryResponse struct {
	ID        int    `json:"id"`
	MatchID   int    `json:"matchId"`
	AgentID   string `json:"agentId,omitempty"`
	EventType string `json:"eventType"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// BurnTimelineBucket is one aggregation bucket in burn stats.
type BurnTimelineBucket struct {
	Timestamp    string `json:"timestamp"`
	TotalBurned  string `json:"totalBurned"`
	BurnCount    int    `json:"burnCount"`
	UniqueAgents int    `json:"uniqueAgents"`
}

// BurnRecord is one recent burn.
type BurnRecord struct {
	ID           int    `json:"id"`
	MatchID      *int   `json:"matchId,omitempty"`
	AgentAddr    string `json:"agentAddr"`
	AmountBurned string `json:"amountBurned"`
	RecordedAt   string `json:"recordedAt"`
}

// BurnStats is the /api/stats/burns response.
type BurnStats struct {
	Timeline    []BurnTimelineBucket `json:"timeline"`
	Recent      []BurnRecord         `json:"recent"`
	Granularity string               `json:"granularity"`
	Period      int                  `json:"period"`
}

// LeaderboardPage is the paginated /api/leaderboard envelope.
type LeaderboardPage struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	SortBy      string             `json:"sortBy"`
	Limit       int                `json:"limit"`
	Offset      int                `json:"offset"`
}

// MatchPage is the paginated /api/matches envelope.
type MatchPage struct {
	Matches []MatchResponse `json:"matches"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// AnswerList wraps /api/matches/{id}/answers.
type AnswerList struct {
	Answers []AnswerResponse `json:"answers"`
}

// CommentaryList wraps /api/matches/{id}/commentary.
type CommentaryList struct {
	Commentary []CommentaryResponse `json:"commentary"`
}

// Leaderboard sort keys accepted by the backend.
const (
	SortByEarnings = "earnings"
	SortByWins     = "wins"
	SortByWinRate  = "winRate"
	SortByBurned   = "burned"
)
