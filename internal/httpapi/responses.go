package httpapi

import (
	"github.com/dmitrijs2005/accountd/internal/auth"
	"github.com/dmitrijs2005/accountd/internal/users"
)

type profileResponse struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

type userInfoResponse struct {
	UserID  int64           `json:"user_id"`
	Email   string          `json:"email"`
	Profile profileResponse `json:"profile"`
}

func newUserInfoResponse(info *users.UserInfo) userInfoResponse {
	return userInfoResponse{
		UserID: info.UserID,
		Email:  info.Email,
		Profile: profileResponse{
			FirstName: info.Profile.FirstName,
			LastName:  info.Profile.LastName,
			Avatar:    info.Profile.Avatar,
		},
	}
}

func newProfileResponse(profile *users.Profile) profileResponse {
	return profileResponse{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Avatar:    profile.Avatar,
	}
}

type tokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

func newTokenResponse(pair *auth.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresIn:  pair.AccessExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshExpiresIn,
	}
}

type accessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type avatarURLResponse struct {
	URL string `json:"url"`
}
