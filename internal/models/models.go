package models

type User struct {
	ID           int    `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Nickname     string `json:"nickname" db:"nickname"`
	Bio          string `json:"bio" db:"bio"`
	BannerURL    string `json:"bannerUrl" db:"banner_url"`
	Status       string `json:"status" db:"status"`
	Role         string `json:"role" db:"role"`
	IsActive     bool   `json:"is_active" db:"is_active"`
	CreatedAt    string `json:"created_at" db:"created_at"`
}

// Profile - представление пользователя для GET /profile/{id}.
// Email заполняется только когда профиль запрашивает его владелец.
type Profile struct {
	ID        int    `json:"id" db:"id"`
	Nickname  string `json:"nickname" db:"nickname"`
	Bio       string `json:"bio" db:"bio"`
	BannerURL string `json:"bannerUrl" db:"banner_url"`
	Status    string `json:"status" db:"status"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	CreatedAt string `json:"created_at" db:"created_at"`
	Email     string `json:"email,omitempty" db:"email"`
}

type Post struct {
	ID             int     `json:"id" db:"id"`
	Title          string  `json:"title" db:"title"`
	Content        string  `json:"content" db:"content"`
	AuthorID       int     `json:"author_id" db:"author_id"`
	IsPinned       bool    `json:"is_pinned" db:"is_pinned"`
	IsAd           bool    `json:"is_ad" db:"is_ad"`
	CommentCount   int     `json:"comment_count" db:"comment_count"`
	CreatedAt      string  `json:"created_at" db:"created_at"`
	UpdatedAt      *string `json:"updated_at" db:"updated_at"`
	AuthorNickname string  `json:"author_nickname" db:"author_nickname"`
}

type Comment struct {
	ID        int    `json:"id" db:"id"`
	PostID    int    `json:"post_id" db:"post_id"`
	UserID    int    `json:"user_id" db:"user_id"`
	Nickname  string `json:"nickname" db:"nickname"`
	Content   string `json:"content" db:"content"`
	ParentID  *int   `json:"parent_id" db:"parent_id"`
	CreatedAt string `json:"created_at" db:"created_at"`
}
