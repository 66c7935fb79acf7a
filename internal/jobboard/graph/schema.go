package graph

// Schema is the GraphQL schema served at /graphql. Authorization is not
// expressed in the schema; each resolver wraps its work in the appropriate
// guard.
const Schema = `
	scalar Time

	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		jobs: [Job!]!
		job(id: ID!): Job!
		employers: [Employer!]!
		employer(id: ID!): Employer!
		users: [User!]!
		user(id: ID!): User!
		applications(userId: ID!): [Application!]!
		me: User!
	}

	type Mutation {
		loginUser(email: String!, password: String!): AuthPayload!
		refreshToken(refreshToken: String!): AuthPayload!
		registerUser(username: String!, email: String!, password: String!): User!

		addJob(title: String!, description: String, employerId: ID!): Job!
		updateJob(id: ID!, title: String, description: String, employerId: ID): Job!
		deleteJob(id: ID!): Boolean!

		addEmployer(name: String!, contactEmail: String!, industry: String!): Employer!
		updateEmployer(id: ID!, name: String, contactEmail: String, industry: String): Employer!
		deleteEmployer(id: ID!): Boolean!

		applyToJob(userId: ID!, jobId: ID!): Application!
		deleteUser(userId: ID!): Boolean!
	}

	type Job {
		id: ID!
		title: String!
		description: String!
		employer: Employer!
	}

	type Employer {
		id: ID!
		name: String!
		contactEmail: String!
		industry: String!
		jobs: [Job!]!
	}

	type User {
		id: ID!
		username: String!
		email: String!
		role: String!
	}

	type Application {
		id: ID!
		user: User!
		job: Job!
		appliedAt: Time!
	}

	type AuthPayload {
		accessToken: String!
		refreshToken: String!
		tokenType: String!
		expiresIn: Int!
	}
`
