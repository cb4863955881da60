package usecase

import "errors"

var (
	// ErrIncompleteSelection is returned by Analyze when a required campaign
	// has not been picked. No request is sent.
	ErrIncompleteSelection = errors.New("incomplete selection")
	ErrUnknownClient       = errors.New("unknown client")
	ErrUnknownCampaign     = errors.New("unknown campaign")
	ErrSameCampaign        = errors.New("comparison campaign must differ from the primary campaign")
	ErrNoPrimaryCampaign   = errors.New("no primary campaign selected")
)

// user-visible validation messages
const (
	MsgSelectBothCampaigns = "Please select both campaigns to compare"
	MsgSelectCampaign      = "Please select a campaign to benchmark"
)
