package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/service"
)

// Resolver is the root of the GraphQL schema. Every guarded field wraps its
// body in one of the service guards; the guard resolves the caller's bearer
// token (carried on the request context) into a fresh identity before the
// body runs.
type Resolver struct {
	auth         *service.AuthService
	users        *service.UserService
	employers    *service.EmployerService
	jobs         *service.JobService
	applications *service.ApplicationService
}

func NewResolver(
	auth *service.AuthService,
	users *service.UserService,
	employers *service.EmployerService,
	jobs *service.JobService,
	applications *service.ApplicationService,
) *Resolver {
	return &Resolver{
		auth:         auth,
		users:        users,
		employers:    employers,
		jobs:         jobs,
		applications: applications,
	}
}

// NewSchema parses the schema against the resolver. Panics on a schema or
// resolver mismatch, which is a programming error caught at startup.
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idPtr(id *graphql.ID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

// --- Query ---

func (r *Resolver) Jobs(ctx context.Context) ([]*jobResolver, error) {
	jobs, err := r.jobs.ListJobs(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return newJobResolvers(r, jobs), nil
}

func (r *Resolver) Job(ctx context.Context, args struct{ ID graphql.ID }) (*jobResolver, error) {
	job, err := r.jobs.GetJobByID(ctx, string(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	return &jobResolver{r: r, job: job}, nil
}

func (r *Resolver) Employers(ctx context.Context) ([]*employerResolver, error) {
	employers, err := r.employers.ListEmployers(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return newEmployerResolvers(r, employers), nil
}

func (r *Resolver) Employer(ctx context.Context, args struct{ ID graphql.ID }) (*employerResolver, error) {
	employer, err := r.employers.GetEmployerByID(ctx, string(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	return &employerResolver{r: r, employer: employer}, nil
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	out, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return r.users.ListUsers(ctx)
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	users := out.([]domain.User)
	resolvers := make([]*userResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, &userResolver{user: u})
	}
	return resolvers, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*userResolver, error) {
	out, err := service.RequireAuthenticated(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return r.users.GetUserByID(ctx, string(args.ID))
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return &userResolver{user: out.(domain.User)}, nil
}

func (r *Resolver) Applications(ctx context.Context, args struct{ UserID graphql.ID }) ([]*applicationResolver, error) {
	out, err := service.RequireSameUser(r.auth, func(ctx context.Context, guarded service.Args) (any, error) {
		return r.applications.ListApplicationsByUser(ctx, guarded["user_id"].(string))
	})(ctx, service.Args{"user_id": string(args.UserID)})
	if err != nil {
		return nil, wrapError(err)
	}
	return newApplicationResolvers(r, out.([]domain.Application)), nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	out, err := service.RequireAuthenticated(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		identity, _ := service.IdentityFromContext(ctx)
		return r.users.GetUserByID(ctx, identity.ID)
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return &userResolver{user: out.(domain.User)}, nil
}

// --- Mutation: auth ---

func (r *Resolver) LoginUser(ctx context.Context, args struct{ Email, Password string }) (*authPayloadResolver, error) {
	pair, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, wrapError(err)
	}
	return &authPayloadResolver{pair: pair}, nil
}

func (r *Resolver) RefreshToken(ctx context.Context, args struct{ RefreshToken string }) (*authPayloadResolver, error) {
	pair, err := r.auth.Refresh(ctx, args.RefreshToken)
	if err != nil {
		return nil, wrapError(err)
	}
	return &authPayloadResolver{pair: pair}, nil
}

func (r *Resolver) RegisterUser(ctx context.Context, args struct{ Username, Email, Password string }) (*userResolver, error) {
	user, err := r.users.Register(ctx, args.Username, args.Email, args.Password)
	if err != nil {
		return nil, wrapError(err)
	}
	return &userResolver{user: user}, nil
}

// --- Mutation: jobs (admin) ---

func (r *Resolver) AddJob(ctx context.Context, args struct {
	Title       string
	Description *string
	EmployerID  graphql.ID
}) (*jobResolver, error) {
	out, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return r.jobs.AddJob(ctx, args.Title, deref(args.Description), string(args.EmployerID))
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return &jobResolver{r: r, job: out.(domain.Job)}, nil
}

func (r *Resolver) UpdateJob(ctx context.Context, args struct {
	ID          graphql.ID
	Title       *string
	Description *string
	EmployerID  *graphql.ID
}) (*jobResolver, error) {
	out, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return r.jobs.UpdateJob(ctx, string(args.ID), args.Title, args.Description, idPtr(args.EmployerID))
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return &jobResolver{r: r, job: out.(domain.Job)}, nil
}

func (r *Resolver) DeleteJob(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	_, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return nil, r.jobs.DeleteJob(ctx, string(args.ID))
	})(ctx, nil)
	if err != nil {
		return false, wrapError(err)
	}
	return true, nil
}

// --- Mutation: employers (admin) ---

func (r *Resolver) AddEmployer(ctx context.Context, args struct {
	Name         string
	ContactEmail string
	Industry     string
}) (*employerResolver, error) {
	out, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return r.employers.AddEmployer(ctx, args.Name, args.ContactEmail, args.Industry)
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return &employerResolver{r: r, employer: out.(domain.Employer)}, nil
}

func (r *Resolver) UpdateEmployer(ctx context.Context, args struct {
	ID           graphql.ID
	Name         *string
	ContactEmail *string
	Industry     *string
}) (*employerResolver, error) {
	out, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return r.employers.UpdateEmployer(ctx, string(args.ID), args.Name, args.ContactEmail, args.Industry)
	})(ctx, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	return &employerResolver{r: r, employer: out.(domain.Employer)}, nil
}

func (r *Resolver) DeleteEmployer(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	_, err := service.RequireAdmin(r.auth, func(ctx context.Context, _ service.Args) (any, error) {
		return nil, r.employers.DeleteEmployer(ctx, string(args.ID))
	})(ctx, nil)
	if err != nil {
		return false, wrapError(err)
	}
	return true, nil
}

// --- Mutation: self-service (same user) ---

func (r *Resolver) ApplyToJob(ctx context.Context, args struct{ UserID, JobID graphql.ID }) (*applicationResolver, error) {
	out, err := service.RequireSameUser(r.auth, func(ctx context.Context, guarded service.Args) (any, error) {
		return r.applications.Apply(ctx, guarded["user_id"].(string), string(args.JobID))
	})(ctx, service.Args{"user_id": string(args.UserID)})
	if err != nil {
		return nil, wrapError(err)
	}
	return &applicationResolver{r: r, app: out.(domain.Application)}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ UserID graphql.ID }) (bool, error) {
	_, err := service.RequireSameUser(r.auth, func(ctx context.Context, guarded service.Args) (any, error) {
		return nil, r.users.DeleteUser(ctx, guarded["user_id"].(string))
	})(ctx, service.Args{"user_id": string(args.UserID)})
	if err != nil {
		return false, wrapError(err)
	}
	return true, nil
}
