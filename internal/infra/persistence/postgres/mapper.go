package postgres

import (
	"slices"

	"estate/internal/domain/entity"
	"estate/internal/infra/persistence/model"
)

func toPrincipalModel(p *entity.Principal) *model.PrincipalModel {
	return &model.PrincipalModel{
		ID:          p.ID,
		Role:        p.Role.String(),
		DisplayName: p.DisplayName,
		Email:       p.Email,
		SecretHash:  p.SecretHash,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPrincipalDomain(m *model.PrincipalModel) *entity.Principal {
	return &entity.Principal{
		ID:          m.ID,
		Role:        entity.Role(m.Role),
		DisplayName: m.DisplayName,
		Email:       m.Email,
		SecretHash:  m.SecretHash,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toSellerModel(s *entity.SellerProfile) *model.SellerProfileModel {
	m := &model.SellerProfileModel{
		ID:                 s.ID,
		FirstName:          s.FirstName,
		LastName:           s.LastName,
		Email:              s.Email,
		Phone:              s.Phone,
		IdentificationDoc:  s.IdentificationDoc,
		ProfilePicture:     s.ProfilePicture,
		Bio:                s.Bio,
		PreferredLanguages: slices.Clone(s.PreferredLanguages),
		Username:           s.Username,
		Status:             string(s.Status),
		RegisteredAt:       s.RegisteredAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.SocialLinks != nil {
		links := model.SellerSocialLinks(*s.SocialLinks)
		m.SocialLinks = &links
	}
	if s.Business != nil {
		business := model.SellerBusiness(*s.Business)
		m.Business = &business
	}

	return m
}

func toSellerDomain(m *model.SellerProfileModel) *entity.SellerProfile {
	s := &entity.SellerProfile{
		ID:                 m.ID,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Email:              m.Email,
		Phone:              m.Phone,
		IdentificationDoc:  m.IdentificationDoc,
		ProfilePicture:     m.ProfilePicture,
		Bio:                m.Bio,
		PreferredLanguages: m.PreferredLanguages,
		Username:           m.Username,
		Status:             entity.SellerStatus(m.Status),
		RegisteredAt:       m.RegisteredAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if s.PreferredLanguages == nil {
		s.PreferredLanguages = []string{}
	}
	if m.SocialLinks != nil {
		links := entity.SocialLinks(*m.SocialLinks)
		s.SocialLinks = &links
	}
	if m.Business != nil {
		business := entity.BusinessInfo(*m.Business)
		s.Business = &business
	}

	return s
}

func toCustomerModel(c *entity.CustomerProfile) *model.CustomerProfileModel {
	return &model.CustomerProfileModel{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		Interests:    slices.Clone(c.Interests),
		RegisteredAt: c.RegisteredAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCustomerDomain(m *model.CustomerProfileModel) *entity.CustomerProfile {
	return &entity.CustomerProfile{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		Interests:    m.Interests,
		RegisteredAt: m.RegisteredAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toListingModel(l *entity.Listing) *model.ListingModel {
	return &model.ListingModel{
		ID:            l.ID,
		Title:         l.Title,
		Type:          string(l.Type),
		Description:   l.Description,
		Address:       model.ListingAddressModel(l.Address),
		ForSale:       l.ForSale,
		Price:         l.Price,
		DiscountPrice: l.DiscountPrice,
		Beds:          l.Beds,
		Baths:         l.Baths,
		ParkingSpot:   l.ParkingSpot,
		Furnished:     l.Furnished,
		Images:        slices.Clone(l.Images),
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toListingDomain(m *model.ListingModel) *entity.Listing {
	images := m.Images
	if images == nil {
		images = []string{}
	}

	return &entity.Listing{
		ID:            m.ID,
		Title:         m.Title,
		Type:          entity.PropertyType(m.Type),
		Description:   m.Description,
		Address:       entity.ListingAddress(m.Address),
		ForSale:       m.ForSale,
		Price:         m.Price,
		DiscountPrice: m.DiscountPrice,
		Beds:          m.Beds,
		Baths:         m.Baths,
		ParkingSpot:   m.ParkingSpot,
		Furnished:     m.Furnished,
		Images:        images,
		OwnerID:       m.OwnerID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toConversationDomain(m *model.ConversationModel) *entity.Conversation {
	c := &entity.Conversation{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		ParticipantRole: entity.Role(m.ParticipantRole),
		Messages:        make([]entity.Message, 0, len(m.Messages)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, msg := range m.Messages {
		c.Messages = append(c.Messages, entity.Message{
			ID:      msg.ID,
			Text:    msg.Text,
			FromBot: msg.FromBot,
			SentAt:  msg.SentAt,
		})
	}

	return c
}
