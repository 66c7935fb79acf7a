package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
)

type jobResolver struct {
	r   *Resolver
	job domain.Job
}

func (j *jobResolver) ID() graphql.ID      { return graphql.ID(j.job.ID) }
func (j *jobResolver) Title() string       { return j.job.Title }
func (j *jobResolver) Description() string { return j.job.Description }

func (j *jobResolver) Employer(ctx context.Context) (*employerResolver, error) {
	employer, err := j.r.employers.GetEmployerByID(ctx, j.job.EmployerID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &employerResolver{r: j.r, employer: employer}, nil
}

func newJobResolvers(r *Resolver, jobs []domain.Job) []*jobResolver {
	resolvers := make([]*jobResolver, 0, len(jobs))
	for _, j := range jobs {
		resolvers = append(resolvers, &jobResolver{r: r, job: j})
	}
	return resolvers
}

type employerResolver struct {
	r        *Resolver
	employer domain.Employer
}

func (e *employerResolver) ID() graphql.ID      { return graphql.ID(e.employer.ID) }
func (e *employerResolver) Name() string        { return e.employer.Name }
func (e *employerResolver) ContactEmail() string { return e.employer.ContactEmail }
func (e *employerResolver) Industry() string    { return e.employer.Industry }

func (e *employerResolver) Jobs(ctx context.Context) ([]*jobResolver, error) {
	jobs, err := e.r.jobs.ListJobsByEmployer(ctx, e.employer.ID)
	if err != nil {
		return nil, wrapError(err)
	}
	return newJobResolvers(e.r, jobs), nil
}

func newEmployerResolvers(r *Resolver, employers []domain.Employer) []*employerResolver {
	resolvers := make([]*employerResolver, 0, len(employers))
	for _, e := range employers {
		resolvers = append(resolvers, &employerResolver{r: r, employer: e})
	}
	return resolvers
}

type userResolver struct {
	user domain.User
}

func (u *userResolver) ID() graphql.ID  { return graphql.ID(u.user.ID) }
func (u *userResolver) Username() string { return u.user.Username }
func (u *userResolver) Email() string    { return u.user.Email }
func (u *userResolver) Role() string     { return u.user.Role }

type applicationResolver struct {
	r   *Resolver
	app domain.Application
}

func (a *applicationResolver) ID() graphql.ID { return graphql.ID(a.app.ID) }

func (a *applicationResolver) AppliedAt() graphql.Time {
	return graphql.Time{Time: a.app.AppliedAt}
}

func (a *applicationResolver) User(ctx context.Context) (*userResolver, error) {
	user, err := a.r.users.GetUserByID(ctx, a.app.UserID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &userResolver{user: user}, nil
}

func (a *applicationResolver) Job(ctx context.Context) (*jobResolver, error) {
	job, err := a.r.jobs.GetJobByID(ctx, a.app.JobID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &jobResolver{r: a.r, job: job}, nil
}

func newApplicationResolvers(r *Resolver, apps []domain.Application) []*applicationResolver {
	resolvers := make([]*applicationResolver, 0, len(apps))
	for _, a := range apps {
		resolvers = append(resolvers, &applicationResolver{r: r, app: a})
	}
	return resolvers
}

type authPayloadResolver struct {
	pair domain.TokenPair
}

func (p *authPayloadResolver) AccessToken() string  { return p.pair.AccessToken }
func (p *authPayloadResolver) RefreshToken() string { return p.pair.RefreshToken }
func (p *authPayloadResolver) TokenType() string    { return p.pair.TokenType }
func (p *authPayloadResolver) ExpiresIn() int32     { return int32(p.pair.ExpiresIn) }
