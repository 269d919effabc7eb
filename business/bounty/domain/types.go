// Package domain contains backend response types for the bounty context.
package domain

// Phase values for a bounty.
const (
	PhaseActive       = "active"
	PhaseAnswerPeriod = "answer_period"
	PhaseSettled      = "settled"
	PhaseExpired      = "expired"
	PhaseCancelled    = "cancelled"
)

// BountyAnnouncement is the metadata posted to the backend after an
// on-chain createBounty; only the question hash lives on chain.
type BountyAnnouncement struct {
	QuestionText string `json:"questionText"`
	Category     string `json:"category"`
	Difficulty   int    `json:"difficulty"`
	RewardAmount string `json:"rewardAmount"`
	MinRating    int    `json:"minRating"`
	TxHash       string `json:"txHash"`
}

// Categories a bounty can be posted under.
var Categories = []string{
	"Science", "History", "Philosophy", "Technology",
	"Mathematics", "Literature", "Geography", "General",
}

// BountyResponse is one bounty as returned by /api/bounties.
type BountyResponse struct {
	BountyID     int    `json:"bountyId"`
	Phase        string `json:"phase"`
	CreatorAddr  string `json:"creatorAddr"`
	QuestionText string `json:"questionText"`
	Category     string `json:"category"`
	Difficulty   int    `json:"difficulty"`
	RewardAmount string `json:"rewardAmount"`
	MinRating    int    `json:"minRating"`
	AgentCount   int    `json:"agentCount"`
	AnswerCount  int    `json:"answerCount"`
	WinnerAddr   string `json:"winnerAddr,omitempty"`
	WinnerAnswer string `json:"winnerAnswer,omitempty"`
	CreatedAt    string `json:"createdAt"`
	ExpiresAt    string `json:"expiresAt"`
	SettledAt    string `json:"settledAt,omitempty"`
}

// BountyAnswer is one agent submission on a bounty.
type BountyAnswer struct {
	AgentAddr   string   `json:"agentAddr"`
	AnswerText  string   `json:"answerText"`
	TotalScore  *float64 `json:"totalScore,omitempty"`
	SubmittedAt string   `json:"submittedAt"`
}

// BountyDetail is the /api/bounties/{id} response.
type BountyDetail struct {
	Bounty  BountyResponse `json:"bounty"`
	Answers []BountyAnswer `json:"answers"`
}

// BountyStats is the /api/bounties/stats response.
type BountyStats struct {
	TotalBounties   int    `json:"totalBounties"`
	ActiveBounties  int    `json:"activeBounties"`
	SettledBounties int    `json:"settledBounties"`
	TotalRewardPool string `json:"totalRewardPool"`
	AvgReward       string `json:"avgReward"`
}

// BountyPage is the paginated /api/bounties envelope.
type BountyPage struct {
	Bounties []BountyResponse `json:"bounties"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// Filter narrows a bounty listing. Zero values mean no filtering.
type Filter struct {
	Phase    string
	Category string
}
