package mongo

import (
	"slices"
	"time"

	"estate/internal/domain/entity"
	"estate/internal/errors"

	"github.com/google/uuid"
)

// Documents use the UUID string form as _id so they stay readable in the shell.

type principalDocument struct {
	ID          string    `bson:"_id"`
	Role        string    `bson:"role"`
	DisplayName string    `bson:"displayName"`
	Email       string    `bson:"email"`
	SecretHash  string    `bson:"secretHash"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type socialLinksDocument struct {
	Facebook  string `bson:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
}

type businessDocument struct {
	Name    string `bson:"name,omitempty"`
	Address string `bson:"address,omitempty"`
	Website string `bson:"website,omitempty"`
}

type sellerDocument struct {
	ID                 string               `bson:"_id"`
	FirstName          string               `bson:"firstName"`
	LastName           string               `bson:"lastName"`
	Email              string               `bson:"email"`
	Phone              string               `bson:"phone"`
	IdentificationDoc  string               `bson:"identificationDoc"`
	ProfilePicture     string               `bson:"profilePicture,omitempty"`
	Bio                string               `bson:"bio,omitempty"`
	SocialLinks        *socialLinksDocument `bson:"socialLinks,omitempty"`
	PreferredLanguages []string             `bson:"preferredLanguages"`
	Business           *businessDocument    `bson:"business,omitempty"`
	Username           string               `bson:"username"`
	Status             string               `bson:"status"`
	RegisteredAt       time.Time            `bson:"registeredAt"`
	UpdatedAt          time.Time            `bson:"updatedAt"`
}

type customerDocument struct {
	ID           string    `bson:"_id"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Email        string    `bson:"email"`
	Phone        string    `bson:"phone"`
	Address      string    `bson:"address,omitempty"`
	Interests    []string  `bson:"interests,omitempty"`
	RegisteredAt time.Time `bson:"registeredAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type addressDocument struct {
	House      string `bson:"house"`
	Street     string `bson:"street"`
	City       string `bson:"city"`
	PostalCode string `bson:"postalCode"`
}

type listingDocument struct {
	ID            string          `bson:"_id"`
	Title         string          `bson:"title"`
	Type          string          `bson:"type"`
	Description   string          `bson:"description"`
	Address       addressDocument `bson:"address"`
	ForSale       bool            `bson:"forSale"`
	Price         float64         `bson:"price"`
	DiscountPrice *float64        `bson:"discountPrice,omitempty"`
	Beds          *int            `bson:"beds,omitempty"`
	Baths         *int            `bson:"baths,omitempty"`
	ParkingSpot   bool            `bson:"parkingSpot"`
	Furnished     bool            `bson:"furnished"`
	Images        []string        `bson:"images"`
	OwnerID       string          `bson:"ownerId"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

type messageDocument struct {
	ID      string    `bson:"id"`
	Text    string    `bson:"text"`
	FromBot bool      `bson:"fromBot"`
	SentAt  time.Time `bson:"sentAt"`
}

// conversationDocument embeds its messages; $push keeps them in append order.
type conversationDocument struct {
	ID              string            `bson:"_id"`
	OwnerID         string            `bson:"ownerId"`
	ParticipantRole string            `bson:"participantRole"`
	Messages        []messageDocument `bson:"messages"`
	CreatedAt       time.Time         `bson:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt"`
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid stored id %q", s)
	}

	return id, nil
}

func toPrincipalDocument(p *entity.Principal) *principalDocument {
	return &principalDocument{
		ID:          p.ID.String(),
		Role:        p.Role.String(),
		DisplayName: p.DisplayName,
		Email:       p.Email,
		SecretHash:  p.SecretHash,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d *principalDocument) toDomain() (*entity.Principal, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	return &entity.Principal{
		ID:          id,
		Role:        entity.Role(d.Role),
		DisplayName: d.DisplayName,
		Email:       d.Email,
		SecretHash:  d.SecretHash,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func toSellerDocument(s *entity.SellerProfile) *sellerDocument {
	d := &sellerDocument{
		ID:                 s.ID.String(),
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
	if d.PreferredLanguages == nil {
		d.PreferredLanguages = []string{}
	}
	if s.SocialLinks != nil {
		links := socialLinksDocument(*s.SocialLinks)
		d.SocialLinks = &links
	}
	if s.Business != nil {
		business := businessDocument(*s.Business)
		d.Business = &business
	}

	return d
}

func (d *sellerDocument) toDomain() (*entity.SellerProfile, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	s := &entity.SellerProfile{
		ID:                 id,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Email:              d.Email,
		Phone:              d.Phone,
		IdentificationDoc:  d.IdentificationDoc,
		ProfilePicture:     d.ProfilePicture,
		Bio:                d.Bio,
		PreferredLanguages: d.PreferredLanguages,
		Username:           d.Username,
		Status:             entity.SellerStatus(d.Status),
		RegisteredAt:       d.RegisteredAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if s.PreferredLanguages == nil {
		s.PreferredLanguages = []string{}
	}
	if d.SocialLinks != nil {
		links := entity.SocialLinks(*d.SocialLinks)
		s.SocialLinks = &links
	}
	if d.Business != nil {
		business := entity.BusinessInfo(*d.Business)
		s.Business = &business
	}

	return s, nil
}

func toCustomerDocument(c *entity.CustomerProfile) *customerDocument {
	return &customerDocument{
		ID:           c.ID.String(),
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

func (d *customerDocument) toDomain() (*entity.CustomerProfile, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	return &entity.CustomerProfile{
		ID:           id,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		Interests:    d.Interests,
		RegisteredAt: d.RegisteredAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func toListingDocument(l *entity.Listing) *listingDocument {
	images := slices.Clone(l.Images)
	if images == nil {
		images = []string{}
	}

	return &listingDocument{
		ID:            l.ID.String(),
		Title:         l.Title,
		Type:          string(l.Type),
		Description:   l.Description,
		Address:       addressDocument(l.Address),
		ForSale:       l.ForSale,
		Price:         l.Price,
		DiscountPrice: l.DiscountPrice,
		Beds:          l.Beds,
		Baths:         l.Baths,
		ParkingSpot:   l.ParkingSpot,
		Furnished:     l.Furnished,
		Images:        images,
		OwnerID:       l.OwnerID.String(),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (d *listingDocument) toDomain() (*entity.Listing, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := parseID(d.OwnerID)
	if err != nil {
		return nil, err
	}

	images := d.Images
	if images == nil {
		images = []string{}
	}

	return &entity.Listing{
		ID:            id,
		Title:         d.Title,
		Type:          entity.PropertyType(d.Type),
		Description:   d.Description,
		Address:       entity.ListingAddress(d.Address),
		ForSale:       d.ForSale,
		Price:         d.Price,
		DiscountPrice: d.DiscountPrice,
		Beds:          d.Beds,
		Baths:         d.Baths,
		ParkingSpot:   d.ParkingSpot,
		Furnished:     d.Furnished,
		Images:        images,
		OwnerID:       ownerID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func toMessageDocument(m entity.Message) messageDocument {
	return messageDocument{
		ID:      m.ID.String(),
		Text:    m.Text,
		FromBot: m.FromBot,
		SentAt:  m.SentAt,
	}
}

func toConversationDocument(c *entity.Conversation) *conversationDocument {
	d := &conversationDocument{
		ID:              c.ID.String(),
		OwnerID:         c.OwnerID.String(),
		ParticipantRole: c.ParticipantRole.String(),
		Messages:        make([]messageDocument, 0, len(c.Messages)),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	for _, m := range c.Messages {
		d.Messages = append(d.Messages, toMessageDocument(m))
	}

	return d
}

func (d *conversationDocument) toDomain() (*entity.Conversation, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := parseID(d.OwnerID)
	if err != nil {
		return nil, err
	}

	c := &entity.Conversation{
		ID:              id,
		OwnerID:         ownerID,
		ParticipantRole: entity.Role(d.ParticipantRole),
		Messages:        make([]entity.Message, 0, len(d.Messages)),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for _, m := range d.Messages {
		msgID, err := parseID(m.ID)
		if err != nil {
			return nil, err
		}
		c.Messages = append(c.Messages, entity.Message{
			ID:      msgID,
			Text:    m.Text,
			FromBot: m.FromBot,
			SentAt:  m.SentAt,
		})
	}

	return c, nil
}

// decodeAll converts a slice of decoded documents into domain values.
func decodeAll[D any, E any](docs []D, convert func(*D) (*E, error)) ([]*E, error) {
	out := make([]*E, 0, len(docs))
	for i := range docs {
		e, err := convert(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, nil
}
