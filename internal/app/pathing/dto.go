package pathing

type PathRequest struct {
	SourceID string         `json:"source_id"`
	TargetID string         `json:"target_id"`
	Funds    map[string]int `json:"funds,omitempty"`
}

type PathResponse struct {
	NodeIDs   []string `json:"node_ids"`
	TotalCost float64  `json:"total_cost"`
	Hops      int      `json:"hops"`
}

type ReachableRequest struct {
	SourceID   string         `json:"source_id"`
	CostBudget float64        `json:"cost_budget"`
	Funds      map[string]int `json:"funds,omitempty"`
}

type ReachableNode struct {
	NodeID string  `json:"node_id"`
	Cost   float64 `json:"cost"`
}

type ReachableResponse struct {
	SourceID string          `json:"source_id"`
	Nodes    []ReachableNode `json:"nodes"`
}
