package handler

import (
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate.ptr(),
	}
}

func toUserPatch(req updateUserRequest) domain.UserPatch {
	return domain.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate.ptr(),
	}
}

func toCreateListingInput(req createListingRequest) ports.CreateListingInput {
	return ports.CreateListingInput{
		City:              req.City,
		StreetName:        req.StreetName,
		StreetNumber:      req.StreetNumber,
		AreaSize:          req.AreaSize,
		HasClimateControl: req.HasClimateControl,
		YearBuilt:         req.YearBuilt,
		RentPrice:         req.RentPrice,
		DateAvailable:     req.DateAvailable.Time,
	}
}

func toListingPatch(req updateListingRequest) domain.ListingPatch {
	return domain.ListingPatch{
		City:              req.City,
		StreetName:        req.StreetName,
		StreetNumber:      req.StreetNumber,
		AreaSize:          req.AreaSize,
		HasClimateControl: req.HasClimateControl,
		YearBuilt:         req.YearBuilt,
		RentPrice:         req.RentPrice,
		DateAvailable:     req.DateAvailable.ptr(),
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) *userResponse {
	favorites := u.FavoriteListingIDs
	if favorites == nil {
		favorites = []string{}
	}
	return &userResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		BirthDate:          u.BirthDate,
		IsPrivileged:       u.IsPrivileged,
		FavoriteListingIDs: favorites,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toListingResponse(l *domain.Listing) *listingResponse {
	return &listingResponse{
		ID:                l.ID,
		City:              l.City,
		StreetName:        l.StreetName,
		StreetNumber:      l.StreetNumber,
		AreaSize:          l.AreaSize,
		HasClimateControl: l.HasClimateControl,
		YearBuilt:         l.YearBuilt,
		RentPrice:         l.RentPrice,
		DateAvailable:     l.DateAvailable,
		OwnerID:           l.OwnerID,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []*listingResponse {
	out := make([]*listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

func toMessageResponses(msgs []*domain.Message) []*messageResponse {
	out := make([]*messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toMessageResponse(m *domain.Message) *messageResponse {
	return &messageResponse{
		ID:        m.ID,
		Content:   m.Content,
		ListingID: m.ListingID,
		SenderID:  m.SenderID,
		CreatedAt: m.CreatedAt,
	}
}
