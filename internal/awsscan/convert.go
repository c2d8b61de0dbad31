package awsscan

import (
	"fmt"
	"strings"
	"unicode"

	"asciicanvas/internal/design"
	"asciicanvas/internal/inference"
)

// ConvertToDesign maps the discovered resources onto a Design. Components
// keep discovery order (EC2, RDS, Lambda, S3, ELB, SQS, ElastiCache,
// API Gateway, ECS); connections come from the inference rule table.
func (s *Scanner) ConvertToDesign() *design.Design {
	components := []design.Component{}

	for _, inst := range s.resources.EC2Instances {
		components = append(components, design.Component{
			Name:        inst.Name,
			Type:        design.TypeService,
			Description: fmt.Sprintf("EC2 Instance (%s)", inst.InstanceType),
		})
	}
	for _, db := range s.resources.RDSInstances {
		components = append(components, design.Component{
			Name:        db.Name,
			Type:        design.TypeDatabase,
			Description: fmt.Sprintf("%s Database", strings.ToUpper(db.Engine)),
		})
	}
	for _, fn := range s.resources.LambdaFunctions {
		components = append(components, design.Component{
			Name:        fn.Name,
			Type:        design.TypeFunction,
			Description: fmt.Sprintf("Lambda Function (%s)", fn.Runtime),
		})
	}
	for _, bucket := range s.resources.S3Buckets {
		components = append(components, design.Component{
			Name:        bucket.Name,
			Type:        design.TypeStorage,
			Description: "S3 Bucket for object storage",
		})
	}
	for _, lb := range s.resources.LoadBalancers {
		components = append(components, design.Component{
			Name:        lb.Name,
			Type:        design.TypeLoadBalancer,
			Description: fmt.Sprintf("%s (%s)", strings.ToUpper(lb.Type), lb.Scheme),
		})
	}
	for _, queue := range s.resources.SQSQueues {
		components = append(components, design.Component{
			Name:        queue.Name,
			Type:        design.TypeQueue,
			Description: "SQS Message Queue",
		})
	}
	for _, cluster := range s.resources.ElastiCacheClusters {
		components = append(components, design.Component{
			Name:        cluster.ID,
			Type:        design.TypeCache,
			Description: fmt.Sprintf("ElastiCache (%s)", capitalize(cluster.Engine)),
		})
	}
	for _, api := range s.resources.APIGateways {
		desc := api.Description
		if desc == "" {
			desc = "REST API"
		}
		components = append(components, design.Component{
			Name:        api.Name,
			Type:        design.TypeAPI,
			Description: "API Gateway - " + desc,
		})
	}
	for _, svc := range s.resources.ECSServices {
		components = append(components, design.Component{
			Name:        svc.Name,
			Type:        design.TypeService,
			Description: fmt.Sprintf("ECS Service (Cluster: %s)", svc.Cluster),
		})
	}

	connections := inference.Infer(components)
	if connections == nil {
		connections = []design.Connection{}
	}

	notes := []string{
		fmt.Sprintf("Scanned AWS region: %s", s.region),
		fmt.Sprintf("Total resources discovered: %d", len(components)),
		"Connections are inferred based on common AWS architecture patterns",
	}

	return &design.Design{
		Title:       fmt.Sprintf("AWS Infrastructure - %s", s.region),
		Description: fmt.Sprintf("Automatically discovered AWS architecture containing: %s", s.resourceSummary()),
		Components:  components,
		Connections: connections,
		Notes:       notes,
	}
}

// resourceSummary lists nonzero per-service counts in a fixed order.
func (s *Scanner) resourceSummary() string {
	counts := []struct {
		label string
		n     int
	}{
		{"EC2", len(s.resources.EC2Instances)},
		{"RDS", len(s.resources.RDSInstances)},
		{"Lambda", len(s.resources.LambdaFunctions)},
		{"S3", len(s.resources.S3Buckets)},
		{"Load Balancers", len(s.resources.LoadBalancers)},
		{"SQS", len(s.resources.SQSQueues)},
		{"ElastiCache", len(s.resources.ElastiCacheClusters)},
		{"API Gateway", len(s.resources.APIGateways)},
		{"ECS", len(s.resources.ECSServices)},
	}
	var parts []string
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
