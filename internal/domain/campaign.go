package domain

// advertiser owning zero or more campaigns
type Client struct {
	ClientID      int64  `json:"client_id"`
	ClientName    string `json:"client_name"`
	Industry      string `json:"industry"`
	CampaignCount int    `json:"campaign_count"`
}

// CampaignSummary is a campaign as listed by the analytics backend. Every
// field except the id may be missing on incomplete records.
type CampaignSummary struct {
	CampaignID     int64   `json:"campaign_id"`
	Name           *string `json:"name"`
	ClientName     *string `json:"client_name"`
	Industry       *string `json:"industry"`
	JobType        *string `json:"job_type"`
	Status         *string `json:"status"`
	TotalPCsMailed *int64  `json:"total_pcs_mailed"`
	DurationDays   *int64  `json:"duration_days"`

	// Calculated metrics
	CombinedSocialCTR      *float64 `json:"combined_social_ctr"`
	LeadsPer1000           *float64 `json:"leads_per_1000"`
	TotalSocialClicks      *int64   `json:"total_social_clicks"`
	TotalSocialImpressions *int64   `json:"total_social_impressions"`
	TotalLeads             *int64   `json:"total_leads"`
}

// FindCampaign returns the campaign with the given id, or nil.
func FindCampaign(campaigns []CampaignSummary, campaignID int64) *CampaignSummary {
	for i := range campaigns {
		if campaigns[i].CampaignID == campaignID {
			c := campaigns[i]
			return &c
		}
	}
	return nil
}

// FindClient returns the client with the given id, or nil.
func FindClient(clients []Client, clientID int64) *Client {
	for i := range clients {
		if clients[i].ClientID == clientID {
			c := clients[i]
			return &c
		}
	}
	return nil
}
