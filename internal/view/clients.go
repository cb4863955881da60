package view

import (
	"campaigndash/internal/domain"
	"campaigndash/internal/usecase"
)

type ClientOption struct {
	ID            int64  `json:"id"`
	Label         string `json:"label"`
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	CampaignCount int    `json:"campaign_count"`
}

type ClientsView struct {
	Clients  []ClientOption `json:"clients"`
	Selected *ClientOption  `json:"selected"`
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
}

func Clients(state usecase.SelectionState) ClientsView {
	clients := make([]ClientOption, len(state.Clients))
	for i := range state.Clients {
		clients[i] = *clientOption(&state.Clients[i])
	}
	return ClientsView{
		Clients:  clients,
		Selected: clientOption(state.Selected),
		Loading:  state.Loading,
		Error:    state.Error,
	}
}

func clientOption(c *domain.Client) *ClientOption {
	if c == nil {
		return nil
	}
	return &ClientOption{
		ID:            c.ClientID,
		Label:         ClientLabel(*c),
		Name:          c.ClientName,
		Industry:      c.Industry,
		CampaignCount: c.CampaignCount,
	}
}
