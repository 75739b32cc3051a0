package sample

// Candidate describes a generated resume.
type Candidate struct {
	Name       string
	Skills     []string
	Experience int
	Education  string
	Filename   string
}

// JobDescription is a sample posting with explicit keyword weights.
type JobDescription struct {
	Title       string
	Description string
	Keywords    map[string]float64
}

var Candidates = []Candidate{
	{
		Name:       "John Smith",
		Skills:     []string{"Python", "Machine Learning", "TensorFlow", "Data Analysis", "SQL", "Pandas"},
		Experience: 5,
		Education:  "Master of Science in Computer Science",
		Filename:   "John_Smith_Resume.txt",
	},
	{
		Name:       "Sarah Johnson",
		Skills:     []string{"JavaScript", "React", "Node.js", "MongoDB", "AWS", "Docker"},
		Experience: 3,
		Education:  "Bachelor of Science in Software Engineering",
		Filename:   "Sarah_Johnson_Resume.txt",
	},
	{
		Name:       "Michael Chen",
		Skills:     []string{"Java", "Spring Boot", "Microservices", "Kubernetes", "PostgreSQL", "Git"},
		Experience: 7,
		Education:  "Master of Engineering in Computer Science",
		Filename:   "Michael_Chen_Resume.txt",
	},
	{
		Name:       "Emily Davis",
		Skills:     []string{"Python", "Deep Learning", "PyTorch", "Computer Vision", "OpenCV", "NumPy"},
		Experience: 4,
		Education:  "PhD in Artificial Intelligence",
		Filename:   "Emily_Davis_Resume.txt",
	},
	{
		Name:       "David Wilson",
		Skills:     []string{"C++", "Data Structures", "Algorithms", "System Design", "Linux", "Git"},
		Experience: 6,
		Education:  "Bachelor of Science in Computer Science",
		Filename:   "David_Wilson_Resume.txt",
	},
	{
		Name:       "Lisa Brown",
		Skills:     []string{"Python", "Data Science", "Scikit-learn", "SQL", "Tableau", "Excel"},
		Experience: 2,
		Education:  "Master of Science in Data Science",
		Filename:   "Lisa_Brown_Resume.txt",
	},
	{
		Name:       "Robert Taylor",
		Skills:     []string{"JavaScript", "Angular", "TypeScript", "REST APIs", "MongoDB", "AWS"},
		Experience: 4,
		Education:  "Bachelor of Science in Information Technology",
		Filename:   "Robert_Taylor_Resume.txt",
	},
	{
		Name:       "Jennifer Lee",
		Skills:     []string{"Python", "Natural Language Processing", "SpaCy", "BERT", "Hugging Face", "SQL"},
		Experience: 3,
		Education:  "Master of Science in Computational Linguistics",
		Filename:   "Jennifer_Lee_Resume.txt",
	},
}

var JobDescriptions = []JobDescription{
	{
		Title: "Senior Python Developer",
		Description: `We are seeking a Senior Python Developer to join our dynamic team. The ideal candidate will have strong experience in Python development, web frameworks, and database management.

Key Responsibilities:
- Develop and maintain scalable web applications using Python
- Work with frameworks like Django or Flask
- Design and implement RESTful APIs
- Collaborate with cross-functional teams
- Mentor junior developers
- Participate in code reviews and technical discussions

Required Skills:
- 5+ years of experience in Python development
- Strong knowledge of web frameworks (Django/Flask)
- Experience with SQL databases (PostgreSQL, MySQL)
- Familiarity with version control systems (Git)
- Understanding of RESTful API design
- Experience with cloud platforms (AWS, Azure, GCP)
- Knowledge of containerization (Docker)

Preferred Skills:
- Experience with microservices architecture
- Knowledge of CI/CD pipelines
- Familiarity with Agile methodologies
- Experience with NoSQL databases
- Understanding of DevOps practices
`,
		Keywords: map[string]float64{
			"Python":    2.0,
			"Django":    1.5,
			"Flask":     1.5,
			"REST APIs": 1.5,
			"SQL":       1.5,
			"Git":       1.0,
			"AWS":       1.0,
			"Docker":    1.0,
			"5 years":   1.5,
		},
	},
	{
		Title: "Machine Learning Engineer",
		Description: `We are looking for a talented Machine Learning Engineer to join our AI team. The successful candidate will develop and deploy machine learning models to solve complex business problems.

Key Responsibilities:
- Develop and implement machine learning models
- Preprocess and analyze large datasets
- Deploy models to production environments
- Collaborate with data scientists and engineers
- Optimize model performance and accuracy
- Stay updated with latest ML technologies

Required Skills:
- 3+ years of experience in machine learning
- Proficiency in Python and ML libraries (TensorFlow, PyTorch, Scikit-learn)
- Experience with data preprocessing and feature engineering
- Knowledge of statistical analysis and modeling
- Familiarity with cloud platforms for ML deployment
- Understanding of model evaluation metrics

Preferred Skills:
- Experience with deep learning frameworks
- Knowledge of MLOps and model deployment
- Familiarity with big data technologies (Spark, Hadoop)
- Experience with computer vision or NLP
- Understanding of model interpretability techniques
`,
		Keywords: map[string]float64{
			"Machine Learning": 2.0,
			"Python":           1.5,
			"TensorFlow":       1.5,
			"PyTorch":          1.5,
			"Scikit-learn":     1.5,
			"Deep Learning":    1.0,
			"Data Analysis":    1.0,
			"3 years":          1.0,
		},
	},
	{
		Title: "Full Stack Developer",
		Description: `We are seeking a Full Stack Developer to build and maintain web applications. The ideal candidate will have experience with both frontend and backend technologies.

Key Responsibilities:
- Develop responsive web applications
- Build and maintain RESTful APIs
- Work with modern JavaScript frameworks
- Design and implement database schemas
- Collaborate with UI/UX designers
- Ensure code quality and performance

Required Skills:
- 4+ years of full stack development experience
- Proficiency in JavaScript/TypeScript
- Experience with React, Angular, or Vue.js
- Knowledge of Node.js and backend frameworks
- Familiarity with SQL and NoSQL databases
- Understanding of web security best practices

Preferred Skills:
- Experience with cloud platforms (AWS, Azure)
- Knowledge of containerization (Docker, Kubernetes)
- Familiarity with CI/CD pipelines
- Experience with GraphQL
- Understanding of microservices architecture
`,
		Keywords: map[string]float64{
			"JavaScript": 2.0,
			"React":      1.5,
			"Angular":    1.5,
			"Node.js":    1.5,
			"Full Stack": 1.5,
			"REST APIs":  1.0,
			"SQL":        1.0,
			"4 years":    1.0,
		},
	},
}
