package auth

// Claims es lo que necesitamos del token: quién es el dueño de las mascotas.
// El sistema es single-tenant, no hay tenant en los claims.
type Claims struct {
	UserID string
	Email  string
	Name   string
}
