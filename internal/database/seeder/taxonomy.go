package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/domain/skill"
	"talent-match/internal/embedding"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type taxonomyNode struct {
	Name         string
	Category     skill.Category
	Parent       string
	Description  string
	Popularity   float64
	MarketDemand float64
}

type taxonomyEdge struct {
	From     string
	To       string
	Type     skill.RelationshipType
	Strength float64
}

// Parents come before their children.
var taxonomy = []taxonomyNode{
	{Name: "Programming", Category: skill.CategoryTechnical, Description: "Writing and maintaining software", Popularity: 9, MarketDemand: 8},
	{Name: "Go", Category: skill.CategoryTechnical, Parent: "Programming", Description: "Statically typed language for services and tooling", Popularity: 7, MarketDemand: 8.5},
	{Name: "Python", Category: skill.CategoryTechnical, Parent: "Programming", Description: "General purpose language for scripting, data and web", Popularity: 9.5, MarketDemand: 9},
	{Name: "Java", Category: skill.CategoryTechnical, Parent: "Programming", Description: "JVM language for enterprise back ends", Popularity: 8, MarketDemand: 7.5},
	{Name: "TypeScript", Category: skill.CategoryTechnical, Parent: "Programming", Description: "Typed JavaScript for web front ends and Node services", Popularity: 8.5, MarketDemand: 8},
	{Name: "SQL", Category: skill.CategoryTechnical, Parent: "Programming", Description: "Querying and modelling relational data", Popularity: 9, MarketDemand: 8},

	{Name: "Backend Development", Category: skill.CategoryTechnical, Description: "Designing server side systems", Popularity: 8, MarketDemand: 8},
	{Name: "REST APIs", Category: skill.CategoryTechnical, Parent: "Backend Development", Description: "Resource oriented HTTP interfaces", Popularity: 8.5, MarketDemand: 7.5},
	{Name: "gRPC", Category: skill.CategoryTechnical, Parent: "Backend Development", Description: "Protocol buffer based RPC", Popularity: 5.5, MarketDemand: 6},
	{Name: "Microservices", Category: skill.CategoryTechnical, Parent: "Backend Development", Description: "Decomposing systems into independently deployed services", Popularity: 7, MarketDemand: 7.5},

	{Name: "Data", Category: skill.CategoryDomain, Description: "Working with data at scale", Popularity: 8, MarketDemand: 8.5},
	{Name: "Data Engineering", Category: skill.CategoryDomain, Parent: "Data", Description: "Pipelines, warehouses and batch processing", Popularity: 6.5, MarketDemand: 8},
	{Name: "Machine Learning", Category: skill.CategoryDomain, Parent: "Data", Description: "Training and serving predictive models", Popularity: 8, MarketDemand: 9.5},

	{Name: "React", Category: skill.CategoryFramework, Description: "Component based UI library", Popularity: 9, MarketDemand: 8},
	{Name: "Spring Boot", Category: skill.CategoryFramework, Description: "Opinionated Java service framework", Popularity: 7, MarketDemand: 7},
	{Name: "Django", Category: skill.CategoryFramework, Description: "Batteries included Python web framework", Popularity: 6.5, MarketDemand: 6},

	{Name: "Docker", Category: skill.CategoryTool, Description: "Container images and runtimes", Popularity: 9, MarketDemand: 8},
	{Name: "Kubernetes", Category: skill.CategoryTool, Description: "Container orchestration", Popularity: 8, MarketDemand: 9},
	{Name: "Terraform", Category: skill.CategoryTool, Description: "Infrastructure as code", Popularity: 6.5, MarketDemand: 7.5},
	{Name: "PostgreSQL", Category: skill.CategoryTool, Description: "Relational database server", Popularity: 8.5, MarketDemand: 7.5},
	{Name: "Redis", Category: skill.CategoryTool, Description: "In-memory key value store", Popularity: 7.5, MarketDemand: 6.5},
	{Name: "Git", Category: skill.CategoryTool, Description: "Distributed version control", Popularity: 9.5, MarketDemand: 6},
	{Name: "AWS", Category: skill.CategoryTool, Description: "Amazon cloud platform", Popularity: 9, MarketDemand: 9},

	{Name: "Agile", Category: skill.CategoryMethodology, Description: "Iterative delivery practices", Popularity: 8, MarketDemand: 6},
	{Name: "Scrum", Category: skill.CategoryMethodology, Parent: "Agile", Description: "Sprint based agile framework", Popularity: 7.5, MarketDemand: 5.5},
	{Name: "Code Review", Category: skill.CategoryMethodology, Description: "Peer review of changes", Popularity: 7, MarketDemand: 5},

	{Name: "Communication", Category: skill.CategorySoft, Description: "Clear written and spoken communication", Popularity: 9, MarketDemand: 7},
	{Name: "Leadership", Category: skill.CategorySoft, Description: "Setting direction and growing a team", Popularity: 7, MarketDemand: 7.5},
	{Name: "Mentoring", Category: skill.CategorySoft, Parent: "Leadership", Description: "Coaching other engineers", Popularity: 6, MarketDemand: 6},
	{Name: "Problem Solving", Category: skill.CategorySoft, Description: "Breaking down ambiguous problems", Popularity: 9, MarketDemand: 7},

	{Name: "English", Category: skill.CategoryLanguage, Description: "Professional English", Popularity: 9, MarketDemand: 7},
	{Name: "Indonesian", Category: skill.CategoryLanguage, Description: "Professional Bahasa Indonesia", Popularity: 6, MarketDemand: 5},

	{Name: "AWS Solutions Architect", Category: skill.CategoryCertification, Parent: "AWS", Description: "AWS associate architecture certification", Popularity: 6, MarketDemand: 7.5},
	{Name: "Certified Kubernetes Administrator", Category: skill.CategoryCertification, Parent: "Kubernetes", Description: "CNCF cluster administration certification", Popularity: 5, MarketDemand: 7},
}

var taxonomyEdges = []taxonomyEdge{
	{From: "Docker", To: "Kubernetes", Type: skill.RelationshipPrerequisite, Strength: 0.9},
	{From: "SQL", To: "PostgreSQL", Type: skill.RelationshipPrerequisite, Strength: 0.8},
	{From: "Python", To: "Machine Learning", Type: skill.RelationshipPrerequisite, Strength: 0.8},
	{From: "Java", To: "Spring Boot", Type: skill.RelationshipPrerequisite, Strength: 0.9},
	{From: "Python", To: "Django", Type: skill.RelationshipPrerequisite, Strength: 0.9},
	{From: "TypeScript", To: "React", Type: skill.RelationshipComplement, Strength: 0.7},
	{From: "Go", To: "Docker", Type: skill.RelationshipComplement, Strength: 0.6},
	{From: "Go", To: "gRPC", Type: skill.RelationshipComplement, Strength: 0.7},
	{From: "PostgreSQL", To: "Redis", Type: skill.RelationshipComplement, Strength: 0.5},
	{From: "Kubernetes", To: "Terraform", Type: skill.RelationshipComplement, Strength: 0.6},
	{From: "Go", To: "Java", Type: skill.RelationshipAlternative, Strength: 0.5},
	{From: "Django", To: "Spring Boot", Type: skill.RelationshipAlternative, Strength: 0.4},
	{From: "REST APIs", To: "gRPC", Type: skill.RelationshipAlternative, Strength: 0.5},
	{From: "Scrum", To: "Agile", Type: skill.RelationshipUpgrade, Strength: 0.6},
	{From: "Docker", To: "Certified Kubernetes Administrator", Type: skill.RelationshipUpgrade, Strength: 0.4},
	{From: "Mentoring", To: "Leadership", Type: skill.RelationshipUpgrade, Strength: 0.7},
}

type SkillGraph interface {
	CreateSkill(ctx context.Context, in usecase.CreateSkillInput) (skill.Skill, bool, error)
	AddRelationship(ctx context.Context, in usecase.AddRelationshipInput) (skill.Relationship, error)
}

// TaxonomySeeder creates the reference skill tree through the skill graph, so every node gets its
// hierarchy path and an embedding. Embeddings are computed in one concurrent batch first; with a
// cached provider the per-skill calls that follow are cache hits.
type TaxonomySeeder struct {
	Graph    SkillGraph
	Embedder embedding.Provider
	Workers  int
	Logger   *zap.Logger
}

func (TaxonomySeeder) Name() string { return "skill_taxonomy" }

func (s TaxonomySeeder) Run(ctx context.Context) error {
	if s.Graph == nil {
		return fmt.Errorf("nil skill graph")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s.warmEmbeddings(ctx, logger)

	ids := make(map[string]uuid.UUID, len(taxonomy))
	created := 0
	for _, n := range taxonomy {
		in := usecase.CreateSkillInput{
			Name:         n.Name,
			Category:     n.Category,
			Description:  n.Description,
			Popularity:   n.Popularity,
			MarketDemand: n.MarketDemand,
		}
		if n.Parent != "" {
			pid, ok := ids[n.Parent]
			if !ok {
				return fmt.Errorf("parent %q of %q is not seeded before it", n.Parent, n.Name)
			}
			in.ParentID = &pid
		}

		sk, ok, err := s.Graph.CreateSkill(ctx, in)
		if err != nil {
			return fmt.Errorf("create %s: %w", n.Name, err)
		}
		ids[n.Name] = sk.ID
		if ok {
			created++
		}
	}

	for _, e := range taxonomyEdges {
		from, ok1 := ids[e.From]
		to, ok2 := ids[e.To]
		if !ok1 || !ok2 {
			return fmt.Errorf("relationship %s -> %s references an unknown skill", e.From, e.To)
		}
		if _, err := s.Graph.AddRelationship(ctx, usecase.AddRelationshipInput{
			FromSkillID: from,
			ToSkillID:   to,
			Type:        e.Type,
			Strength:    e.Strength,
		}); err != nil {
			return fmt.Errorf("relate %s -> %s: %w", e.From, e.To, err)
		}
	}

	logger.Info("taxonomy seeded",
		zap.Int("skills", len(taxonomy)),
		zap.Int("created", created),
		zap.Int("relationships", len(taxonomyEdges)),
	)
	return nil
}

func (s TaxonomySeeder) warmEmbeddings(ctx context.Context, logger *zap.Logger) {
	if s.Embedder == nil {
		return
	}
	texts := make([]string, 0, len(taxonomy))
	for _, n := range taxonomy {
		texts = append(texts, skill.EmbeddingText(n.Name, n.Description, n.Category))
	}
	if _, err := embedding.EmbedBatch(ctx, s.Embedder, texts, s.Workers); err != nil {
		logger.Warn("embedding warm-up failed, skills may be stored without vectors", zap.Error(err))
	}
}
