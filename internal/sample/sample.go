// Package sample generates demo resumes and job descriptions that the rank
// command and the HTTP API can consume.
package sample

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	ResumesDir = "resumes"
	JobsDir    = "jobs"
)

// Job lists the files written for one job description.
type Job struct {
	Title           string
	DescriptionFile string
	KeywordsFile    string
}

// Written describes everything a Generator produced.
type Written struct {
	Resumes []string
	Jobs    []Job
}

// Generator writes sample data. Output is deterministic for a given seed and
// clock.
type Generator struct {
	logger *zap.Logger
	rng    *rand.Rand
	now    time.Time
}

// New creates a Generator. A nil logger disables logging.
func New(logger *zap.Logger, seed uint64, now time.Time) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:    now,
	}
}

// Write creates dir/resumes with one text resume per candidate and dir/jobs
// with a description file and a keywords file per job description.
func (g *Generator) Write(dir string) (*Written, error) {
	resumesDir := filepath.Join(dir, ResumesDir)
	jobsDir := filepath.Join(dir, JobsDir)
	for _, d := range []string{resumesDir, jobsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("creating %q: %w", d, err)
		}
	}

	written := &Written{}

	for _, c := range Candidates {
		path := filepath.Join(resumesDir, c.Filename)
		if err := os.WriteFile(path, []byte(g.Resume(c)), 0o644); err != nil {
			return nil, fmt.Errorf("writing resume %q: %w", path, err)
		}
		g.logger.Debug("resume written", zap.String("filename", path))
		written.Resumes = append(written.Resumes, path)
	}

	for _, jd := range JobDescriptions {
		job, err := writeJob(jobsDir, jd)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("job description written", zap.String("title", jd.Title))
		written.Jobs = append(written.Jobs, job)
	}

	return written, nil
}

func writeJob(dir string, jd JobDescription) (Job, error) {
	slug := Slug(jd.Title)
	job := Job{
		Title:           jd.Title,
		DescriptionFile: filepath.Join(dir, slug+".txt"),
		KeywordsFile:    filepath.Join(dir, slug+".keywords.yaml"),
	}

	if err := os.WriteFile(job.DescriptionFile, []byte(jd.Description), 0o644); err != nil {
		return Job{}, fmt.Errorf("writing job description %q: %w", job.DescriptionFile, err)
	}

	data, err := yaml.Marshal(jd.Keywords)
	if err != nil {
		return Job{}, fmt.Errorf("encoding keywords of %q: %w", jd.Title, err)
	}
	if err := os.WriteFile(job.KeywordsFile, data, 0o644); err != nil {
		return Job{}, fmt.Errorf("writing keywords %q: %w", job.KeywordsFile, err)
	}

	return job, nil
}

// Slug turns a title into a file name stem.
func Slug(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

// Resume renders the resume of c.
func (g *Generator) Resume(c Candidate) string {
	year := g.now.Year()
	skills := strings.Join(c.Skills, ", ")
	handle := strings.ToLower(strings.ReplaceAll(c.Name, " ", ""))
	email := strings.ToLower(strings.ReplaceAll(c.Name, " ", "."))

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", strings.ToUpper(c.Name), strings.Repeat("=", len(c.Name)))

	fmt.Fprintf(&b, "CONTACT INFORMATION\nEmail: %s@email.com\nPhone: +1-555-%d-%d\nLinkedIn: linkedin.com/in/%s\n\n",
		email, 100+g.rng.IntN(900), 1000+g.rng.IntN(9000), handle)

	fmt.Fprintf(&b, "PROFESSIONAL SUMMARY\nExperienced %s with %d years of experience in %s. "+
		"Passionate about creating innovative solutions and driving business value through technology.\n\n",
		g.pick("software engineer", "data scientist", "machine learning engineer", "full-stack developer"),
		c.Experience, g.some(c.Skills, 3))

	fmt.Fprintf(&b, "SKILLS\nTechnical Skills: %s\nProgramming Languages: %s\nFrameworks & Tools: %s\n\n",
		skills, g.some(c.Skills, 5), g.some(c.Skills, 4))

	fmt.Fprintf(&b, "EXPERIENCE\n\nSenior %s | Tech Company Inc.\n%d - Present\n",
		g.pick("Software Engineer", "Data Scientist", "ML Engineer"), year-c.Experience)
	fmt.Fprintf(&b, "- Developed and maintained %s using %s\n",
		g.pick("web applications", "machine learning models", "data pipelines"), g.pick(c.Skills...))
	b.WriteString("- Collaborated with cross-functional teams to deliver high-quality software solutions\n")
	fmt.Fprintf(&b, "- Implemented %s to improve development efficiency\n",
		g.pick("agile methodologies", "CI/CD pipelines", "automated testing"))
	b.WriteString("- Mentored junior developers and conducted code reviews\n\n")

	fmt.Fprintf(&b, "%s | Startup XYZ\n%d - %d\n",
		g.pick("Software Engineer", "Data Analyst", "Developer"), year-c.Experience-2, year-c.Experience)
	fmt.Fprintf(&b, "- Built %s using %s\n",
		g.pick("REST APIs", "data visualization dashboards", "automation scripts"), g.pick(c.Skills...))
	b.WriteString("- Analyzed large datasets and provided actionable insights\n")
	fmt.Fprintf(&b, "- Participated in %s meetings\n\n",
		g.pick("sprint planning", "technical design", "architecture discussions"))

	fmt.Fprintf(&b, "EDUCATION\n%s | University of Technology\n%d - %d\n- GPA: %.2f\n- Relevant Coursework: %s\n\n",
		c.Education, year-c.Experience-4, year-c.Experience-1, 3+g.rng.Float64(), g.some(c.Skills, 3))

	fmt.Fprintf(&b, "PROJECTS\n- %s: Built using %s\n- %s: Developed with %s\n\n",
		g.pick("E-commerce Platform", "Machine Learning Model", "Data Analysis Dashboard"), g.pick(c.Skills...),
		g.pick("Mobile App", "Web Application", "API Service"), g.pick(c.Skills...))

	fmt.Fprintf(&b, "CERTIFICATIONS\n- %s Certification\n- %s Certification\n\n",
		g.pick("AWS Certified Developer", "Google Cloud Professional", "Microsoft Azure"),
		g.pick("Scrum Master", "Product Owner", "Agile Coach"))

	b.WriteString("LANGUAGES\nEnglish (Native), Spanish (Intermediate), French (Basic)\n\n")

	fmt.Fprintf(&b, "INTERESTS\n%s\n",
		g.pick("Open Source Contribution", "Machine Learning Research", "Web Development", "Data Science"))

	return b.String()
}

func (g *Generator) pick(items ...string) string {
	return items[g.rng.IntN(len(items))]
}

// some joins up to n distinct items chosen at random.
func (g *Generator) some(items []string, n int) string {
	n = min(n, len(items))
	chosen := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(items))[:n] {
		chosen = append(chosen, items[i])
	}
	return strings.Join(chosen, ", ")
}
