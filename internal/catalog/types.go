package catalog

// Book is a catalog entry as returned by the backend.
type Book struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Reviews []Review `json:"reviews"`
}

// Review is a reader review attached to a book.
type Review struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	BookID  string `json:"book_id"`
}

// BookInput is the body of create and update requests.
type BookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ReviewInput is the body of a review creation request.
type ReviewInput struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// Credentials are submitted form-encoded to the login endpoint.
type Credentials struct {
	Username string
	Password string
}

// Registration is submitted as JSON to the register endpoint.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is returned by a successful registration.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
