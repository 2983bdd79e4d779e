package memory

import (
	"slices"

	"estate/internal/domain/entity"
)

func clonePrincipal(p *entity.Principal) *entity.Principal {
	out := *p

	return &out
}

func cloneSeller(s *entity.SellerProfile) *entity.SellerProfile {
	out := *s
	out.PreferredLanguages = slices.Clone(s.PreferredLanguages)
	if s.SocialLinks != nil {
		links := *s.SocialLinks
		out.SocialLinks = &links
	}
	if s.Business != nil {
		business := *s.Business
		out.Business = &business
	}

	return &out
}

func cloneCustomer(c *entity.CustomerProfile) *entity.CustomerProfile {
	out := *c
	out.Interests = slices.Clone(c.Interests)

	return &out
}

func cloneListing(l *entity.Listing) *entity.Listing {
	out := *l
	out.Images = slices.Clone(l.Images)
	out.DiscountPrice = clonePtr(l.DiscountPrice)
	out.Beds = clonePtr(l.Beds)
	out.Baths = clonePtr(l.Baths)

	return &out
}

func cloneConversation(c *entity.Conversation) *entity.Conversation {
	out := *c
	out.Messages = slices.Clone(c.Messages)
	if out.Messages == nil {
		out.Messages = []entity.Message{}
	}

	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}
