package newsml

import (
	"context"

	"github.com/belga/newswire/pkg/newswire/feed"
)

// RemoteName is the registry name of the belga.be remote parser.
const RemoteName = "belga_remote_newsml12"

// Remote parses the in-house remote-correspondent feed. Unlike the tip
// feed it folds service and product into one services-products term
// and resolves sidecar files through the host attachment service.
type Remote struct {
	walker internalWalker
}

// NewRemote returns the remote parser.
func NewRemote() *Remote {
	return &Remote{walker: internalWalker{
		parserName: RemoteName,
		supportedRoles: map[string]bool{
			"ALERT": true, "SHORT": true, "TEXT": true, "BRIEF": true, "ORIGINAL": true,
		},
		combineServices:  true,
		storeAttachments: true,
	}}
}

func (p *Remote) Name() string { return RemoteName }

func (p *Remote) CanParse(payload feed.Payload) bool { return isNewsML(payload) }

func (p *Remote) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	items, err := p.walker.parse(deps, payload.XML, provider)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}
