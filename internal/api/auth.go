package api

import "context"

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login authenticates with email and password and returns a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.post(ctx, "/api/Authentication/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// Signup registers a new account. The backend sends an OTP to the email
// address; the account stays inactive until VerifyOTP succeeds.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.post(ctx, "/api/Authentication/signup", req, nil)
}

// VerifyOTP confirms the one-time code sent during signup or password
// reset.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.post(ctx, "/api/Authentication/verify-otp", body, nil)
}

// ResendOTP requests a fresh one-time code.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/api/Authentication/resend-otp", body, nil)
}

// ForgotPassword starts a password reset by sending an OTP to the email
// address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/api/Authentication/forgot-password", body, nil)
}

// ResetPassword completes a password reset with the OTP from
// ForgotPassword.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.post(ctx, "/api/Authentication/reset-password", body, nil)
}
