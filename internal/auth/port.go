package auth

type AuthServiceAPI interface {
	Login(ip, username, password string) (*Session, error)
}

var _ AuthServiceAPI = (*AuthService)(nil)
