package subgraph

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

type User struct {
	ID          string           `json:"id"`
	Address     string           `json:"address"`
	Handle      string           `json:"handle"`
	Rating      string           `json:"rating"`
	NumReviews  string           `json:"numReviews"`
	CID         string           `json:"cid,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
	Description *UserDescription `json:"description,omitempty"`
}

type UserDescription struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	About    string `json:"about"`
	Skills   string `json:"skills_raw"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// UsersQuery selects one page of users. First == 0 means no page size: the
// subgraph's default page is returned and Skip is ignored.
type UsersQuery struct {
	First  int
	Skip   int
	Search string
}

const userFields = `
    id
    address
    handle
    rating
    numReviews
    cid
    createdAt
    updatedAt
    description {
      id
      title
      about
      skills_raw
      name
      role
      image_url
      country
      timezone
    }`

type usersResponse struct {
	Users []User `json:"users"`
}

// BuildUsersQuery renders the users query and its variables.
func BuildUsersQuery(q UsersQuery) (string, map[string]any) {
	var params, args []string
	vars := map[string]any{}

	args = append(args, "orderBy: rating", "orderDirection: desc")
	if q.First > 0 {
		params = append(params, "$first: Int!", "$skip: Int!")
		args = append(args, "first: $first", "skip: $skip")
		vars["first"] = q.First
		vars["skip"] = q.Skip
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		params = append(params, "$search: String!")
		args = append(args, "where: {handle_contains_nocase: $search}")
		vars["search"] = s
	}

	var b strings.Builder
	b.WriteString("query Users")
	if len(params) > 0 {
		b.WriteString("(" + strings.Join(params, ", ") + ")")
	}
	b.WriteString(" {\n  users(" + strings.Join(args, ", ") + ") {")
	b.WriteString(userFields)
	b.WriteString("\n  }\n}")
	return b.String(), vars
}

// Users fetches one page of users.
func (c *Client) Users(ctx context.Context, q UsersQuery) ([]User, error) {
	query, vars := BuildUsersQuery(q)

	var resp usersResponse
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []User{}, nil
	}
	return resp.Users, nil
}

// UserByID returns nil when no user has the id.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("subgraph: user id is empty")
	}

	query := `query UserByID($id: ID!) {
  user(id: $id) {` + userFields + `
  }
}`
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.Query(ctx, query, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UserByAddress returns nil when the address owns no profile.
func (c *Client) UserByAddress(ctx context.Context, address string) (*User, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, errors.New("subgraph: address is empty")
	}

	query := `query UserByAddress($address: Bytes!) {
  users(where: {address: $address}, first: 1) {` + userFields + `
  }
}`
	var resp usersResponse
	if err := c.Query(ctx, query, map[string]any{"address": address}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, nil
	}
	return &resp.Users[0], nil
}
