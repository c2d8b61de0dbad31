// Package awsscan enumerates live AWS resources through the aws CLI and maps
// them onto a Design. Every discovery call is read-only; a failing call
// counts as zero resources of that kind.
package awsscan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"asciicanvas/internal/console"
)

const (
	versionTimeout  = 5 * time.Second
	identityTimeout = 10 * time.Second
	discoverTimeout = 30 * time.Second
)

var (
	ErrCLINotInstalled  = errors.New("awsscan: aws CLI is not installed")
	ErrNotAuthenticated = errors.New("awsscan: not authenticated with AWS")
)

// Identity is the caller identity reported by STS.
type Identity struct {
	UserID  string `json:"UserId"`
	Account string `json:"Account"`
	Arn     string `json:"Arn"`
}

// Scanner walks a fixed sequence of list/describe calls against one region.
type Scanner struct {
	runner Runner
	ui     *console.Console
	region string

	resources discoveredResources
}

// Transient per-kind records, projected to the fields the conversion uses.
type discoveredResources struct {
	EC2Instances        []ec2Instance
	RDSInstances        []rdsInstance
	LambdaFunctions     []lambdaFunction
	S3Buckets           []s3Bucket
	LoadBalancers       []loadBalancer
	SQSQueues           []sqsQueue
	ElastiCacheClusters []cacheCluster
	APIGateways         []apiGateway
	ECSServices         []ecsService
}

type ec2Instance struct {
	ID             string
	Name           string
	InstanceType   string
	VPCID          string
	SecurityGroups []string
}

type rdsInstance struct {
	ID     string
	Name   string
	Engine string
	Status string
}

type lambdaFunction struct {
	Name    string
	Runtime string
	Handler string
}

type s3Bucket struct {
	Name string
}

type loadBalancer struct {
	Name   string
	Type   string
	Scheme string
}

type sqsQueue struct {
	Name string
	URL  string
}

type cacheCluster struct {
	ID     string
	Engine string
	Status string
}

type apiGateway struct {
	ID          string
	Name        string
	Description string
}

type ecsService struct {
	Name    string
	Cluster string
}

// New builds a Scanner. An empty region is resolved during Scan.
func New(runner Runner, ui *console.Console, region string) *Scanner {
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &Scanner{runner: runner, ui: ui, region: region}
}

// Region returns the region the scan ran against.
func (s *Scanner) Region() string { return s.region }

// Scan checks the CLI and authentication, resolves the region, then walks
// all resource kinds. Per-kind failures are non-fatal; CLI absence or a
// failed guided authentication aborts.
func (s *Scanner) Scan(ctx context.Context) error {
	if !s.checkCLIInstalled(ctx) {
		s.ui.Errorf("✗ AWS CLI is not installed.")
		s.ui.Println("Please install it from: https://aws.amazon.com/cli/")
		return ErrCLINotInstalled
	}
	s.ui.Successf("AWS CLI is installed")

	authed, identity := s.checkAuthentication(ctx)
	if !authed {
		if !s.guideAuthentication(ctx) {
			return ErrNotAuthenticated
		}
	} else {
		s.ui.Successf("Authenticated as: %s", identity.Arn)
	}

	s.resolveRegion(ctx)
	s.ui.Infof("Scanning AWS region: %s", s.region)
	s.ui.Println()

	s.discoverEC2Instances(ctx)
	s.discoverRDSInstances(ctx)
	s.discoverLambdaFunctions(ctx)
	s.discoverS3Buckets(ctx)
	s.discoverLoadBalancers(ctx)
	s.discoverSQSQueues(ctx)
	s.discoverElastiCacheClusters(ctx)
	s.discoverAPIGateways(ctx)
	s.discoverECSServices(ctx)

	s.ui.Successf("AWS infrastructure scan complete")
	s.ui.Println()
	return nil
}

func (s *Scanner) checkCLIInstalled(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	_, err := s.runner.Run(ctx, []string{"--version"})
	return err == nil
}

func (s *Scanner) checkAuthentication(ctx context.Context) (bool, *Identity) {
	ctx, cancel := context.WithTimeout(ctx, identityTimeout)
	defer cancel()
	out, err := s.runner.Run(ctx, []string{"sts", "get-caller-identity"})
	if err != nil {
		return false, nil
	}
	var identity Identity
	if err := json.Unmarshal(out, &identity); err != nil {
		return false, nil
	}
	return true, &identity
}

// guideAuthentication walks the user through one authentication attempt and
// re-checks. Returns false when the user skips or the re-check still fails.
func (s *Scanner) guideAuthentication(ctx context.Context) bool {
	s.ui.Warnf("\n⚠ You need to authenticate with AWS first.\n")
	s.ui.Println("You have two main options:")
	s.ui.Println()
	s.ui.Println("1. AWS Configure - For IAM user credentials")
	s.ui.Println("   Run: aws configure")
	s.ui.Println("   You'll need: Access Key ID, Secret Access Key, Region")
	s.ui.Println()
	s.ui.Println("2. AWS SSO - For AWS SSO users")
	s.ui.Println("   Run: aws sso login")
	s.ui.Println("   (Note: You must have SSO configured first)")
	s.ui.Println()

	method := s.ui.AskChoice("Which authentication method?", []string{"configure", "sso", "skip"}, "configure")
	if method == "skip" {
		return false
	}

	s.ui.Infof("\nPlease run this command in your terminal:")
	if method == "configure" {
		s.ui.Println("  aws configure")
	} else {
		s.ui.Println("  aws sso login")
	}
	s.ui.Println()
	s.ui.Pause("After you've authenticated, press Enter to continue...")

	authed, identity := s.checkAuthentication(ctx)
	if !authed {
		s.ui.Errorf("✗ Authentication failed. Please try again manually.")
		return false
	}
	s.ui.Successf("Successfully authenticated as: %s", identity.Arn)
	return true
}

// resolveRegion: explicit option, then the CLI's configured default, then an
// interactive prompt defaulting to us-east-1.
func (s *Scanner) resolveRegion(ctx context.Context) {
	if s.region != "" {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, identityTimeout)
	defer cancel()
	if out, err := s.runner.Run(cctx, []string{"configure", "get", "region"}); err == nil {
		if region := strings.TrimSpace(string(out)); region != "" {
			s.region = region
			return
		}
	}
	s.region = s.ui.Ask("Enter AWS region to scan", "us-east-1")
}

// runJSON executes one discovery call scoped to the region and decodes the
// output into target. Any failure (exit status, timeout, bad JSON) returns
// false and is treated as no resources of that kind.
func (s *Scanner) runJSON(ctx context.Context, args []string, target any) bool {
	if s.region != "" {
		args = append(append([]string{}, args...), "--region", s.region)
	}
	ctx, cancel := context.WithTimeout(ctx, discoverTimeout)
	defer cancel()
	out, err := s.runner.Run(ctx, args)
	if err != nil || len(out) == 0 {
		return false
	}
	return json.Unmarshal(out, target) == nil
}

func (s *Scanner) discoverEC2Instances(ctx context.Context) {
	s.ui.Infof("  • Scanning EC2 instances...")
	var resp struct {
		Reservations []struct {
			Instances []struct {
				InstanceID   string `json:"InstanceId"`
				InstanceType string `json:"InstanceType"`
				VPCID        string `json:"VpcId"`
				State        struct {
					Name string `json:"Name"`
				} `json:"State"`
				Tags []struct {
					Key   string `json:"Key"`
					Value string `json:"Value"`
				} `json:"Tags"`
				SecurityGroups []struct {
					GroupID string `json:"GroupId"`
				} `json:"SecurityGroups"`
			} `json:"Instances"`
		} `json:"Reservations"`
	}
	if !s.runJSON(ctx, []string{"ec2", "describe-instances"}, &resp) {
		return
	}
	for _, reservation := range resp.Reservations {
		for _, inst := range reservation.Instances {
			if inst.State.Name != "running" {
				continue
			}
			name := inst.InstanceID
			for _, tag := range inst.Tags {
				if tag.Key == "Name" && tag.Value != "" {
					name = tag.Value
					break
				}
			}
			groups := make([]string, 0, len(inst.SecurityGroups))
			for _, sg := range inst.SecurityGroups {
				groups = append(groups, sg.GroupID)
			}
			s.resources.EC2Instances = append(s.resources.EC2Instances, ec2Instance{
				ID:             inst.InstanceID,
				Name:           name,
				InstanceType:   inst.InstanceType,
				VPCID:          inst.VPCID,
				SecurityGroups: groups,
			})
		}
	}
}

func (s *Scanner) discoverRDSInstances(ctx context.Context) {
	s.ui.Infof("  • Scanning RDS databases...")
	var resp struct {
		DBInstances []struct {
			DBInstanceIdentifier string `json:"DBInstanceIdentifier"`
			Engine               string `json:"Engine"`
			DBInstanceStatus     string `json:"DBInstanceStatus"`
		} `json:"DBInstances"`
	}
	if !s.runJSON(ctx, []string{"rds", "describe-db-instances"}, &resp) {
		return
	}
	for _, db := range resp.DBInstances {
		s.resources.RDSInstances = append(s.resources.RDSInstances, rdsInstance{
			ID:     db.DBInstanceIdentifier,
			Name:   db.DBInstanceIdentifier,
			Engine: db.Engine,
			Status: db.DBInstanceStatus,
		})
	}
}

func (s *Scanner) discoverLambdaFunctions(ctx context.Context) {
	s.ui.Infof("  • Scanning Lambda functions...")
	var resp struct {
		Functions []struct {
			FunctionName string `json:"FunctionName"`
			Runtime      string `json:"Runtime"`
			Handler      string `json:"Handler"`
		} `json:"Functions"`
	}
	if !s.runJSON(ctx, []string{"lambda", "list-functions"}, &resp) {
		return
	}
	for _, fn := range resp.Functions {
		s.resources.LambdaFunctions = append(s.resources.LambdaFunctions, lambdaFunction{
			Name:    fn.FunctionName,
			Runtime: fn.Runtime,
			Handler: fn.Handler,
		})
	}
}

func (s *Scanner) discoverS3Buckets(ctx context.Context) {
	s.ui.Infof("  • Scanning S3 buckets...")
	var resp struct {
		Buckets []struct {
			Name string `json:"Name"`
		} `json:"Buckets"`
	}
	if !s.runJSON(ctx, []string{"s3api", "list-buckets"}, &resp) {
		return
	}
	for _, bucket := range resp.Buckets {
		s.resources.S3Buckets = append(s.resources.S3Buckets, s3Bucket{Name: bucket.Name})
	}
}

func (s *Scanner) discoverLoadBalancers(ctx context.Context) {
	s.ui.Infof("  • Scanning Load Balancers...")
	var resp struct {
		LoadBalancers []struct {
			LoadBalancerName string `json:"LoadBalancerName"`
			Type             string `json:"Type"`
			Scheme           string `json:"Scheme"`
		} `json:"LoadBalancers"`
	}
	if !s.runJSON(ctx, []string{"elbv2", "describe-load-balancers"}, &resp) {
		return
	}
	for _, lb := range resp.LoadBalancers {
		s.resources.LoadBalancers = append(s.resources.LoadBalancers, loadBalancer{
			Name:   lb.LoadBalancerName,
			Type:   lb.Type,
			Scheme: lb.Scheme,
		})
	}
}

func (s *Scanner) discoverSQSQueues(ctx context.Context) {
	s.ui.Infof("  • Scanning SQS queues...")
	var resp struct {
		QueueUrls []string `json:"QueueUrls"`
	}
	if !s.runJSON(ctx, []string{"sqs", "list-queues"}, &resp) {
		return
	}
	for _, queueURL := range resp.QueueUrls {
		parts := strings.Split(queueURL, "/")
		s.resources.SQSQueues = append(s.resources.SQSQueues, sqsQueue{
			Name: parts[len(parts)-1],
			URL:  queueURL,
		})
	}
}

func (s *Scanner) discoverElastiCacheClusters(ctx context.Context) {
	s.ui.Infof("  • Scanning ElastiCache clusters...")
	var resp struct {
		CacheClusters []struct {
			CacheClusterID     string `json:"CacheClusterId"`
			Engine             string `json:"Engine"`
			CacheClusterStatus string `json:"CacheClusterStatus"`
		} `json:"CacheClusters"`
	}
	if !s.runJSON(ctx, []string{"elasticache", "describe-cache-clusters"}, &resp) {
		return
	}
	for _, cluster := range resp.CacheClusters {
		s.resources.ElastiCacheClusters = append(s.resources.ElastiCacheClusters, cacheCluster{
			ID:     cluster.CacheClusterID,
			Engine: cluster.Engine,
			Status: cluster.CacheClusterStatus,
		})
	}
}

func (s *Scanner) discoverAPIGateways(ctx context.Context) {
	s.ui.Infof("  • Scanning API Gateways...")
	var resp struct {
		Items []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"items"`
	}
	if !s.runJSON(ctx, []string{"apigateway", "get-rest-apis"}, &resp) {
		return
	}
	for _, api := range resp.Items {
		s.resources.APIGateways = append(s.resources.APIGateways, apiGateway{
			ID:          api.ID,
			Name:        api.Name,
			Description: api.Description,
		})
	}
}

func (s *Scanner) discoverECSServices(ctx context.Context) {
	s.ui.Infof("  • Scanning ECS services...")
	var clusters struct {
		ClusterArns []string `json:"clusterArns"`
	}
	if !s.runJSON(ctx, []string{"ecs", "list-clusters"}, &clusters) {
		return
	}
	for _, clusterArn := range clusters.ClusterArns {
		parts := strings.Split(clusterArn, "/")
		clusterName := parts[len(parts)-1]

		var services struct {
			ServiceArns []string `json:"serviceArns"`
		}
		if !s.runJSON(ctx, []string{"ecs", "list-services", "--cluster", clusterName}, &services) {
			continue
		}
		for _, serviceArn := range services.ServiceArns {
			sparts := strings.Split(serviceArn, "/")
			s.resources.ECSServices = append(s.resources.ECSServices, ecsService{
				Name:    sparts[len(sparts)-1],
				Cluster: clusterName,
			})
		}
	}
}
